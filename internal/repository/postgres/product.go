package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ProductRepository implements domain.ProductRepository.
type ProductRepository struct {
	db DBTX
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProductByID fetches a catalog item by id.
func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	p := &domain.Product{}

	err := r.db.QueryRow(ctx,
		`SELECT id, name, category, description, price, count_in_stock
		 FROM products
		 WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.CountInStock)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("repository: failed to get product %s: %w", id, err)
	}

	return p, nil
}

// ListProducts returns the full catalog.
func (r *ProductRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, description, price, count_in_stock
		 FROM products
		 ORDER BY name`)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p := &domain.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.CountInStock); err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products: %w", err)
	}

	return products, nil
}
