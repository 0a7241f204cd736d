package domain

import "context"

// UserRepository defines persistence for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*User, error)
}

// ProductRepository defines read access to the product catalog.
type ProductRepository interface {
	GetProductByID(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
}

// RewardRepository defines read access to the reward catalog.
type RewardRepository interface {
	GetRewardByID(ctx context.Context, id string) (*Reward, error)
	ListActiveRewards(ctx context.Context) ([]*Reward, error)
}

// OrderRepository defines persistence for orders. Orders are append-only
// through normal flow; only status and settlement state mutate later.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, id string) (*Order, error)
	GetOrdersByUserID(ctx context.Context, userID string) ([]*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error
	MarkPointsSettled(ctx context.Context, id string) error
	GetUnsettledOrders(ctx context.Context, limit int) ([]*Order, error)
}

// PointsRepository defines the append-only point ledger. Balances are
// sums over ledger entries, never stored values.
type PointsRepository interface {
	Balance(ctx context.Context, userID string) (int64, error)
	Accrue(ctx context.Context, userID, reference string, points int64) error
	SettleWithLock(ctx context.Context, userID, orderID string, earned, spent int64) error
	GetRedemptions(ctx context.Context, userID string) ([]*PointTransaction, error)
}
