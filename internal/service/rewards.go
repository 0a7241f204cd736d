package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/LuBeneventi/lvlupreact-2/internal/repository/postgres"
)

// rewardProductPrefix marks the synthesized pseudo-product of a redeemed
// reward line.
const rewardProductPrefix = "reward-"

// RewardService implements reward listing and redemption against the
// point ledger.
type RewardService struct {
	rewards domain.RewardRepository
	points  domain.PointsRepository
}

// NewRewardService creates a new RewardService
func NewRewardService(rewards domain.RewardRepository, points domain.PointsRepository) *RewardService {
	return &RewardService{
		rewards: rewards,
		points:  points,
	}
}

// ListActive returns the rewards currently redeemable.
func (s *RewardService) ListActive(ctx context.Context) ([]*domain.Reward, error) {
	rewards, err := s.rewards.ListActiveRewards(ctx)
	if err != nil {
		return nil, fmt.Errorf("reward service: failed to list rewards: %w", err)
	}

	return rewards, nil
}

// Redeem exchanges points for a reward and returns the cart line to add:
// a zero-price pseudo-product tagged with the reward's point cost and
// resolved pricing effect. The balance check here is advisory; the
// authoritative check happens at settlement.
func (s *RewardService) Redeem(ctx context.Context, userID, rewardID string, quantity int) (*domain.CartLine, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	reward, err := s.rewards.GetRewardByID(ctx, rewardID)
	if err != nil {
		if errors.Is(err, postgres.ErrRewardNotFound) {
			return nil, domain.ErrRewardNotFound
		}
		return nil, fmt.Errorf("reward service: failed to get reward %s: %w", rewardID, err)
	}

	if !reward.IsActive {
		return nil, domain.ErrRewardInactive
	}

	balance, err := s.points.Balance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reward service: failed to get balance for user %s: %w", userID, err)
	}

	if reward.PointsCost*int64(quantity) > balance {
		return nil, domain.ErrInsufficientPoints
	}

	// Redeemed lines are never stock-bounded; the pseudo-product always
	// carries at least one unit of stock.
	line := &domain.CartLine{
		Product: domain.Product{
			ID:           rewardProductPrefix + reward.ID,
			Name:         reward.Name,
			Category:     string(reward.Type),
			Price:        0,
			CountInStock: quantity,
		},
		Quantity:   quantity,
		IsRedeemed: true,
		PointsCost: reward.PointsCost,
		Effect:     domain.ResolveEffect(*reward),
	}

	return line, nil
}

// Balance returns the user's current point balance.
func (s *RewardService) Balance(ctx context.Context, userID string) (int64, error) {
	balance, err := s.points.Balance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("reward service: failed to get balance for user %s: %w", userID, err)
	}

	return balance, nil
}

// GetRedemptions returns the user's redemption history.
func (s *RewardService) GetRedemptions(ctx context.Context, userID string) ([]*domain.PointTransaction, error) {
	redemptions, err := s.points.GetRedemptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reward service: failed to get redemptions for user %s: %w", userID, err)
	}

	return redemptions, nil
}
