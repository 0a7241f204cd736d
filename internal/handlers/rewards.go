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

// RewardService defines reward listing, redemption and the point
// balance surface.
type RewardService interface {
	ListActive(ctx context.Context) ([]*domain.Reward, error)
	Redeem(ctx context.Context, userID, rewardID string, quantity int) (*domain.CartLine, error)
	Balance(ctx context.Context, userID string) (int64, error)
	GetRedemptions(ctx context.Context, userID string) ([]*domain.PointTransaction, error)
}

type RewardsHandler struct {
	rewardService RewardService
	logger        *zap.Logger
}

func NewRewardsHandler(rewardService RewardService, logger *zap.Logger) *RewardsHandler {
	return &RewardsHandler{
		rewardService: rewardService,
		logger:        logger,
	}
}

func (h *RewardsHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.rewardService.ListActive(r.Context())
	if err != nil {
		h.logger.Error("failed to list rewards", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rewards); err != nil {
		h.logger.Error("failed to encode rewards response", zap.Error(err))
	}
}

type redeemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *RewardsHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	req := redeemRequest{Quantity: 1}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
	}

	line, err := h.rewardService.Redeem(r.Context(), userID, chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			http.Error(w, "Bad Request", http.StatusBadRequest)
		case errors.Is(err, domain.ErrRewardNotFound):
			http.Error(w, "Not Found", http.StatusNotFound)
		case errors.Is(err, domain.ErrRewardInactive):
			http.Error(w, "Conflict", http.StatusConflict)
		case errors.Is(err, domain.ErrInsufficientPoints):
			http.Error(w, "Payment Required", http.StatusPaymentRequired)
		default:
			h.logger.Error("failed to redeem reward", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(line); err != nil {
		h.logger.Error("failed to encode redeem response", zap.Error(err))
	}
}

type balanceResponse struct {
	Points int64 `json:"points"`
}

func (h *RewardsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	balance, err := h.rewardService.Balance(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get balance", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(balanceResponse{Points: balance}); err != nil {
		h.logger.Error("failed to encode balance response", zap.Error(err))
	}
}

func (h *RewardsHandler) GetRedemptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	redemptions, err := h.rewardService.GetRedemptions(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get redemptions", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if len(redemptions) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(redemptions); err != nil {
		h.logger.Error("failed to encode redemptions response", zap.Error(err))
	}
}
