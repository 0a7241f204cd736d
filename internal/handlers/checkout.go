package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/LuBeneventi/lvlupreact-2/internal/service"
	"go.uber.org/zap"
)

// CheckoutService defines cart pricing and order placement.
type CheckoutService interface {
	GetQuote(ctx context.Context, userID string, lines []domain.CartLine, region string) (*service.Quote, error)
	PlaceOrder(ctx context.Context, userID string, lines []domain.CartLine, address domain.Address, method domain.PaymentMethod) (*domain.Order, error)
}

type CheckoutHandler struct {
	checkoutService CheckoutService
	logger          *zap.Logger
}

func NewCheckoutHandler(checkoutService CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

type quoteRequest struct {
	Items  []domain.CartLine `json:"items"`
	Region string            `json:"region"`
}

func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	quote, err := h.checkoutService.GetQuote(r.Context(), userID, req.Items, req.Region)
	if err != nil {
		h.writeCheckoutError(w, err, "failed to quote cart")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(quote); err != nil {
		h.logger.Error("failed to encode quote response", zap.Error(err))
	}
}

type placeOrderRequest struct {
	Items           []domain.CartLine    `json:"items"`
	ShippingAddress domain.Address       `json:"shippingAddress"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	order, err := h.checkoutService.PlaceOrder(r.Context(), userID, req.Items, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		h.writeCheckoutError(w, err, "failed to place order")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(order); err != nil {
		h.logger.Error("failed to encode order response", zap.Error(err))
	}
}

func (h *CheckoutHandler) writeCheckoutError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidPaymentMethod):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidCartLine):
		http.Error(w, "Unprocessable Entity", http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrProductNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	case errors.Is(err, domain.ErrUserNotFound):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	default:
		h.logger.Error(msg, zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
