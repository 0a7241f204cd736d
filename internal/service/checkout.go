package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/LuBeneventi/lvlupreact-2/internal/pricing"
	"github.com/LuBeneventi/lvlupreact-2/internal/repository/postgres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService turns a cart into a priced, persisted order and
// settles the resulting point movement against the ledger.
type CheckoutService struct {
	users    domain.UserRepository
	products domain.ProductRepository
	orders   domain.OrderRepository
	points   domain.PointsRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	users domain.UserRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	points domain.PointsRepository,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		users:    users,
		products: products,
		orders:   orders,
		points:   points,
		validate: validator.New(),
		logger:   logger,
	}
}

// Quote is the full pricing breakdown for a cart before placing the
// order.
type Quote struct {
	Subtotal      int64              `json:"subtotal"`
	Discounts     pricing.Discounts  `json:"discounts"`
	FreeShipping  bool               `json:"freeShipping"`
	ShippingPrice int64              `json:"shippingPrice"`
	TotalPrice    int64              `json:"totalPrice"`
	Points        pricing.Settlement `json:"points"`
}

// GetQuote prices a cart for a destination region without side effects.
func (s *CheckoutService) GetQuote(ctx context.Context, userID string, lines []domain.CartLine, region string) (*Quote, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	priced, err := s.priceLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	return s.quote(user, priced, region), nil
}

// PlaceOrder validates the shipping data, persists the order and applies
// the point settlement. The order write is the point of no return: once
// it succeeds an order is always returned, whatever happens to the
// points ledger afterwards.
func (s *CheckoutService) PlaceOrder(
	ctx context.Context,
	userID string,
	lines []domain.CartLine,
	address domain.Address,
	method domain.PaymentMethod,
) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if err := s.validate.Struct(address); err != nil {
		return nil, domain.ErrInvalidAddress
	}
	if !method.Valid() {
		return nil, domain.ErrInvalidPaymentMethod
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	priced, err := s.priceLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	q := s.quote(user, priced, address.Region)

	order := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		Items:           priced,
		ShippingAddress: address,
		PaymentMethod:   method,
		TotalPrice:      q.TotalPrice,
		ShippingPrice:   q.ShippingPrice,
		IsPaid:          true,
		Status:          domain.OrderStatusPending,
		PointsEarned:    q.Points.Earned,
		PointsSpent:     q.Points.Spent,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("checkout service: failed to create order: %w", err)
	}

	// Settlement is independent of the order write: a transient failure
	// here leaves the order unsettled for the worker to retry, and never
	// takes the order down with it.
	if err := s.SettleOrder(ctx, order); err != nil {
		s.logger.Error("points settlement deferred",
			zap.String("order_id", order.ID),
			zap.String("user_id", order.UserID),
			zap.Error(err),
		)
	}

	return order, nil
}

// SettleOrder applies the order's net point movement to the ledger and
// marks the order settled. Insufficient balance is terminal: the order
// stands, the ledger stays untouched and the settlement is marked
// resolved. A non-nil return means the settlement is still pending.
func (s *CheckoutService) SettleOrder(ctx context.Context, order *domain.Order) error {
	err := s.points.SettleWithLock(ctx, order.UserID, order.ID, order.PointsEarned, order.PointsSpent)
	if err != nil {
		if !errors.Is(err, postgres.ErrInsufficientPoints) {
			return fmt.Errorf("checkout service: failed to settle points for order %s: %w", order.ID, err)
		}
		s.logger.Warn("points settlement rejected: insufficient balance",
			zap.String("order_id", order.ID),
			zap.String("user_id", order.UserID),
			zap.Int64("points_spent", order.PointsSpent),
		)
	}

	if err := s.orders.MarkPointsSettled(ctx, order.ID); err != nil {
		return fmt.Errorf("checkout service: failed to mark order %s settled: %w", order.ID, err)
	}
	order.PointsSettled = true

	return nil
}

func (s *CheckoutService) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("checkout service: failed to get user %s: %w", userID, err)
	}
	return user, nil
}

// priceLines snapshots catalog prices into ordinary lines and validates
// every line's invariants. Redeemed lines are synthesized by the
// redemption path and pass through without a catalog lookup.
func (s *CheckoutService) priceLines(ctx context.Context, lines []domain.CartLine) ([]domain.CartLine, error) {
	priced := make([]domain.CartLine, 0, len(lines))

	for _, line := range lines {
		if !line.IsRedeemed {
			product, err := s.products.GetProductByID(ctx, line.Product.ID)
			if err != nil {
				if errors.Is(err, postgres.ErrProductNotFound) {
					return nil, domain.ErrProductNotFound
				}
				return nil, fmt.Errorf("checkout service: failed to price line %s: %w", line.Product.ID, err)
			}
			line.Product = *product
		}

		if err := line.Validate(); err != nil {
			return nil, err
		}
		priced = append(priced, line)
	}

	return priced, nil
}

func (s *CheckoutService) quote(user *domain.User, lines []domain.CartLine, region string) *Quote {
	subtotal := pricing.Subtotal(lines)
	discounts := pricing.ComputeDiscounts(subtotal, user.HasDuocDiscount, lines)
	free := pricing.FreeShipping(subtotal, lines)
	shipping := pricing.ResolveShipping(region, free)
	settlement := pricing.SettlePoints(discounts.NetMerchandise, pricing.RedeemedPoints(lines))

	return &Quote{
		Subtotal:      subtotal,
		Discounts:     discounts,
		FreeShipping:  free,
		ShippingPrice: shipping,
		TotalPrice:    discounts.NetMerchandise + shipping,
		Points:        settlement,
	}
}
