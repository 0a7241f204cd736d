package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pendiente"
	OrderStatusProcessing OrderStatus = "Procesando"
	OrderStatusShipped    OrderStatus = "Enviado"
	OrderStatusDelivered  OrderStatus = "Entregado"
	OrderStatusCancelled  OrderStatus = "Cancelado"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentMethod represents how an order was paid. Payment is recorded as
// a label only, no gateway is involved.
type PaymentMethod string

const (
	PaymentWebpay   PaymentMethod = "webpay"
	PaymentTransfer PaymentMethod = "transferencia"
	PaymentCash     PaymentMethod = "efectivo"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentWebpay, PaymentTransfer, PaymentCash:
		return true
	}
	return false
}

// Role represents a user role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Address represents a shipping address. Street, city and region are
// mandatory for checkout.
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	Region  string `json:"region" validate:"required"`
	ZipCode string `json:"zipCode,omitempty"`
}

// User represents a storefront user. The point balance is not stored
// here, it is the sum of the user's point ledger.
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Role            Role      `json:"role"`
	HasDuocDiscount bool      `json:"hasDuocDiscount"`
	ReferralCode    string    `json:"referralCode"`
	Address         Address   `json:"address"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Product represents a catalog item. Prices are integer CLP.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	Description  string `json:"description,omitempty"`
	Price        int64  `json:"price"`
	CountInStock int    `json:"countInStock"`
}

// RewardType classifies a reward definition.
type RewardType string

const (
	RewardTypeProduct  RewardType = "Producto"
	RewardTypeDiscount RewardType = "Descuento"
	RewardTypeShipping RewardType = "Envio"
)

// Reward represents a loyalty reward definition from the reward catalog.
// DiscountAmount and DiscountRate encode the monetary semantics for
// Descuento rewards; at most one of them is expected to be set.
type Reward struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           RewardType `json:"type"`
	PointsCost     int64      `json:"pointsCost"`
	DiscountAmount int64      `json:"discountAmount,omitempty"`
	DiscountRate   int        `json:"discountRate,omitempty"`
	Description    string     `json:"description,omitempty"`
	Season         string     `json:"season,omitempty"`
	IsActive       bool       `json:"isActive"`
}

// CartLine represents one cart entry: either an ordinary purchase or a
// redeemed reward masquerading as a zero-price pseudo-product.
type CartLine struct {
	Product    Product      `json:"product"`
	Quantity   int          `json:"quantity"`
	IsRedeemed bool         `json:"isRedeemed"`
	PointsCost int64        `json:"pointsCost"`
	Effect     RewardEffect `json:"effect,omitempty"`
}

// Validate enforces the cart line invariant: a line is either ordinary
// (no redemption tags, stock-bounded quantity) or a redemption (points
// cost set, price zero, not stock-bounded).
func (l CartLine) Validate() error {
	if l.Quantity <= 0 {
		return ErrInvalidCartLine
	}
	if l.IsRedeemed {
		if l.PointsCost <= 0 || l.Product.Price != 0 {
			return ErrInvalidCartLine
		}
		return nil
	}
	if l.PointsCost != 0 {
		return ErrInvalidCartLine
	}
	if l.Quantity > l.Product.CountInStock {
		return ErrInvalidCartLine
	}
	return nil
}

// LineTotal returns the merchandise value of the line in CLP.
func (l CartLine) LineTotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Order represents a placed order. Items is an immutable snapshot of the
// cart at placement time, redemption tags included.
type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Items           []CartLine    `json:"items"`
	ShippingAddress Address       `json:"shippingAddress"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	TotalPrice      int64         `json:"totalPrice"`
	ShippingPrice   int64         `json:"shippingPrice"`
	IsPaid          bool          `json:"isPaid"`
	Status          OrderStatus   `json:"status"`
	PointsEarned    int64         `json:"pointsEarned"`
	PointsSpent     int64         `json:"pointsSpent"`
	PointsSettled   bool          `json:"pointsSettled"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// PointsDelta returns the net point movement this order settles.
func (o *Order) PointsDelta() int64 {
	return o.PointsEarned - o.PointsSpent
}

// TransactionType represents the direction of a point ledger entry.
type TransactionType string

const (
	TransactionTypeAccrual    TransactionType = "accrual"
	TransactionTypeRedemption TransactionType = "redemption"
)

// PointTransaction represents one entry in a user's point ledger.
// A user's balance is the sum of their entries.
type PointTransaction struct {
	ID        int64           `json:"-"`
	UserID    string          `json:"-"`
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"`
	Type      TransactionType `json:"-"`
	CreatedAt time.Time       `json:"createdAt"`
}
