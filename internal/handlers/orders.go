package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderService defines order history and status management.
type OrderService interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	GetUserOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type OrdersHandler struct {
	orderService OrderService
	logger       *zap.Logger
}

func NewOrdersHandler(orderService OrderService, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// GetUserOrders returns the authenticated user's order history, newest
// first. Responds 204 when the user has no orders.
func (h *OrdersHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := h.orderService.GetUserOrders(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get user orders", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		h.logger.Error("failed to encode orders response", zap.Error(err))
	}
}

// GetOrder returns a single order. Customers may only read their own
// orders, admins may read any.
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get order", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	role, _ := GetRole(r.Context())
	if order.UserID != userID && role != string(domain.RoleAdmin) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(order); err != nil {
		h.logger.Error("failed to encode order response", zap.Error(err))
	}
}

// ListOrders returns all orders. Admin only.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		h.logger.Error("failed to encode orders response", zap.Error(err))
	}
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// UpdateStatus changes an order's status. Admin only.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	err := h.orderService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOrderStatus):
			http.Error(w, "Bad Request", http.StatusBadRequest)
		case errors.Is(err, domain.ErrOrderNotFound):
			http.Error(w, "Not Found", http.StatusNotFound)
		default:
			h.logger.Error("failed to update order status", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
