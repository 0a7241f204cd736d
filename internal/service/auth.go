package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/LuBeneventi/lvlupreact-2/internal/repository/postgres"
	"github.com/LuBeneventi/lvlupreact-2/internal/utils/jwt"
	"github.com/LuBeneventi/lvlupreact-2/internal/utils/password"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registration bonuses, in points.
const (
	registrationBonus = 100
	referralBonus     = 50
)

// duocDomains are the academic email domains that grant the flat
// merchandise discount.
var duocDomains = []string{"@duoc.cl", "@duocuc.cl"}

// AuthServiceConfig holds AuthService settings.
type AuthServiceConfig struct {
	MinPasswordLength int
}

// AuthService implements registration and login.
type AuthService struct {
	users  domain.UserRepository
	points domain.PointsRepository
	hasher password.Hasher
	jwt    *jwt.Manager
	config AuthServiceConfig
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users domain.UserRepository,
	points domain.PointsRepository,
	hasher password.Hasher,
	jwtManager *jwt.Manager,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		points: points,
		hasher: hasher,
		jwt:    jwtManager,
		config: config,
		logger: logger,
	}
}

// RegisterRequest is the input for Register.
type RegisterRequest struct {
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Password   string         `json:"password"`
	Address    domain.Address `json:"address"`
	ReferredBy string         `json:"referredBy,omitempty"`
}

// Register creates a new customer account, credits the registration
// bonus to the point ledger and returns an auth token. Users registered
// with an academic email get the flat discount flag.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (string, *domain.User, error) {
	if req.Name == "" || !strings.Contains(req.Email, "@") {
		return "", nil, domain.ErrInvalidInput
	}
	if len(req.Password) < s.config.MinPasswordLength {
		return "", nil, domain.ErrInvalidInput
	}
	if req.Address.Street == "" || req.Address.City == "" || req.Address.Region == "" {
		return "", nil, domain.ErrInvalidAddress
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", nil, fmt.Errorf("auth service: failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Email:           strings.ToLower(req.Email),
		PasswordHash:    hash,
		Role:            domain.RoleCustomer,
		HasDuocDiscount: hasDuocDomain(req.Email),
		ReferralCode:    generateReferralCode(req.Name),
		Address:         req.Address,
		IsActive:        true,
	}

	startingPoints := int64(registrationBonus)

	var referrer *domain.User
	if req.ReferredBy != "" {
		referrer, err = s.users.GetUserByReferralCode(ctx, req.ReferredBy)
		if err != nil && !errors.Is(err, postgres.ErrUserNotFound) {
			return "", nil, fmt.Errorf("auth service: failed to look up referral code: %w", err)
		}
		if referrer != nil {
			startingPoints += referralBonus
		}
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, postgres.ErrUserExists) {
			return "", nil, domain.ErrUserExists
		}
		return "", nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	// Bonus accruals are best effort; a failed write must not undo the
	// registration.
	if err := s.points.Accrue(ctx, user.ID, "registro", startingPoints); err != nil {
		s.logger.Error("failed to credit registration bonus",
			zap.String("user_id", user.ID), zap.Error(err))
	}
	if referrer != nil {
		if err := s.points.Accrue(ctx, referrer.ID, "referido", referralBonus); err != nil {
			s.logger.Error("failed to credit referral bonus",
				zap.String("user_id", referrer.ID), zap.Error(err))
		}
	}

	token, err := s.jwt.Generate(user.ID, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("auth service: failed to generate token: %w", err)
	}

	return token, user, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, pass string) (string, *domain.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("auth service: failed to get user: %w", err)
	}

	if err := s.hasher.Check(user.PasswordHash, pass); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, domain.ErrUserInactive
	}

	token, err := s.jwt.Generate(user.ID, string(user.Role))
	if err != nil {
		return "", nil, fmt.Errorf("auth service: failed to generate token: %w", err)
	}

	return token, user, nil
}

func hasDuocDomain(email string) bool {
	lower := strings.ToLower(email)
	for _, d := range duocDomains {
		if strings.HasSuffix(lower, d) {
			return true
		}
	}
	return false
}

func generateReferralCode(name string) string {
	var prefix strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			prefix.WriteRune(r)
			if prefix.Len() == 3 {
				break
			}
		}
	}
	if prefix.Len() == 0 {
		prefix.WriteString("LVL")
	}
	return fmt.Sprintf("%s%d", prefix.String(), 1000+rand.Intn(9000))
}
