package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserRepository implements domain.UserRepository.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, has_duoc_discount,
	referral_code, street, city, region, zip_code, is_active, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.HasDuocDiscount, &user.ReferralCode,
		&user.Address.Street, &user.Address.City, &user.Address.Region, &user.Address.ZipCode,
		&user.IsActive, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user record.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, has_duoc_discount,
		                    referral_code, street, city, region, zip_code, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.HasDuocDiscount, user.ReferralCode,
		user.Address.Street, user.Address.City, user.Address.Region, user.Address.ZipCode,
		user.IsActive,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUserExists
		}
		return fmt.Errorf("repository: failed to create user %q: %w", user.Email, err)
	}

	return nil
}

// GetUserByEmail fetches a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: failed to get user by email %q: %w", email, err)
	}

	return user, nil
}

// GetUserByID fetches a user by id.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: failed to get user by id %s: %w", id, err)
	}

	return user, nil
}

// GetUserByReferralCode fetches the user owning a referral code.
func (r *UserRepository) GetUserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: failed to get user by referral code %q: %w", code, err)
	}

	return user, nil
}
