package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/jackc/pgx/v5"
)

// RewardRepository implements domain.RewardRepository.
type RewardRepository struct {
	db DBTX
}

// NewRewardRepository creates a new RewardRepository
func NewRewardRepository(db DBTX) *RewardRepository {
	return &RewardRepository{db: db}
}

// GetRewardByID fetches a reward definition by id.
func (r *RewardRepository) GetRewardByID(ctx context.Context, id string) (*domain.Reward, error) {
	reward := &domain.Reward{}

	err := r.db.QueryRow(ctx,
		`SELECT id, name, type, points_cost, discount_amount, discount_rate,
		        description, season, is_active
		 FROM rewards
		 WHERE id = $1`,
		id,
	).Scan(&reward.ID, &reward.Name, &reward.Type, &reward.PointsCost,
		&reward.DiscountAmount, &reward.DiscountRate,
		&reward.Description, &reward.Season, &reward.IsActive)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("repository: failed to get reward %s: %w", id, err)
	}

	return reward, nil
}

// ListActiveRewards returns the rewards currently redeemable.
func (r *RewardRepository) ListActiveRewards(ctx context.Context) ([]*domain.Reward, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, type, points_cost, discount_amount, discount_rate,
		        description, season, is_active
		 FROM rewards
		 WHERE is_active
		 ORDER BY points_cost`)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to list active rewards: %w", err)
	}
	defer rows.Close()

	var rewards []*domain.Reward
	for rows.Next() {
		reward := &domain.Reward{}
		err := rows.Scan(&reward.ID, &reward.Name, &reward.Type, &reward.PointsCost,
			&reward.DiscountAmount, &reward.DiscountRate,
			&reward.Description, &reward.Season, &reward.IsActive)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan reward: %w", err)
		}
		rewards = append(rewards, reward)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rewards: %w", err)
	}

	return rewards, nil
}
