package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/LuBeneventi/lvlupreact-2/internal/repository/postgres"
)

// CatalogService exposes the product catalog.
type CatalogService struct {
	products domain.ProductRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(products domain.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// ListProducts returns the full catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog service: failed to list products: %w", err)
	}

	return products, nil
}

// GetProduct returns a single catalog item.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("catalog service: failed to get product %s: %w", id, err)
	}

	return product, nil
}
