package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/jackc/pgx/v5"
)

// OrderRepository implements domain.OrderRepository. The cart snapshot is
// stored as JSONB so redemption tags survive round-trips unchanged.
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, user_id, items, street, city, region, zip_code,
	payment_method, total_price, shipping_price, is_paid, status,
	points_earned, points_spent, points_settled, created_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := &domain.Order{}
	var items []byte

	err := row.Scan(
		&order.ID, &order.UserID, &items,
		&order.ShippingAddress.Street, &order.ShippingAddress.City,
		&order.ShippingAddress.Region, &order.ShippingAddress.ZipCode,
		&order.PaymentMethod, &order.TotalPrice, &order.ShippingPrice,
		&order.IsPaid, &order.Status,
		&order.PointsEarned, &order.PointsSpent, &order.PointsSettled,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	return order, nil
}

// CreateOrder persists a new order with its full cart snapshot.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("repository: failed to encode order items: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO orders (id, user_id, items, street, city, region, zip_code,
		                     payment_method, total_price, shipping_price, is_paid, status,
		                     points_earned, points_spent, points_settled, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		order.ID, order.UserID, items,
		order.ShippingAddress.Street, order.ShippingAddress.City,
		order.ShippingAddress.Region, order.ShippingAddress.ZipCode,
		order.PaymentMethod, order.TotalPrice, order.ShippingPrice,
		order.IsPaid, order.Status,
		order.PointsEarned, order.PointsSpent, order.PointsSettled,
		order.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("repository: failed to create order %s: %w", order.ID, err)
	}

	return nil
}

// GetOrderByID fetches an order by id.
func (r *OrderRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to get order %s: %w", id, err)
	}

	return order, nil
}

// GetOrdersByUserID returns the user's orders, newest first.
func (r *OrderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to get orders for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// ListOrders returns all orders, newest first.
func (r *OrderRepository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to list orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// UpdateOrderStatus sets the order status.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, id)

	if err != nil {
		return fmt.Errorf("repository: failed to update status of order %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// MarkPointsSettled flags the order's point settlement as resolved.
func (r *OrderRepository) MarkPointsSettled(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET points_settled = TRUE WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("repository: failed to mark order %s settled: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// GetUnsettledOrders returns orders whose point settlement is pending,
// oldest first.
func (r *OrderRepository) GetUnsettledOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE NOT points_settled ORDER BY created_at LIMIT $1`,
		limit)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to get unsettled orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	return orders, nil
}
