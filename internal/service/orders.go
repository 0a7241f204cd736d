package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/LuBeneventi/lvlupreact-2/internal/repository/postgres"
)

// OrderService exposes order tracking and the admin status transition.
type OrderService struct {
	orders domain.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orders domain.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// GetOrder returns a single order.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrOrderNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("order service: failed to get order %s: %w", id, err)
	}

	return order, nil
}

// GetUserOrders returns the user's orders.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	orders, err := s.orders.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to get orders for user %s: %w", userID, err)
	}

	return orders, nil
}

// ListOrders returns every order. Admin use.
func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to list orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus sets an order's status. Transitions are admin-driven and
// unconstrained beyond the status being a known one; checkout itself
// only ever writes Pendiente.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidOrderStatus
	}

	if err := s.orders.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, postgres.ErrOrderNotFound) {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("order service: failed to update status of order %s: %w", id, err)
	}

	return nil
}
