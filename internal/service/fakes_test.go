package service

import (
	"context"
	"sync"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/LuBeneventi/lvlupreact-2/internal/repository/postgres"
)

// In-memory fakes for the domain repositories. The ledger fake mirrors
// the real repository's semantics closely enough to exercise the
// settlement paths: balance as a sum, idempotency by reference,
// insufficient-balance rejection.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return postgres.ErrUserExists
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, postgres.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, postgres.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByReferralCode(_ context.Context, code string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ReferralCode == code {
			return u, nil
		}
	}
	return nil, postgres.ErrUserNotFound
}

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, postgres.ErrProductNotFound
}

func (f *fakeProductRepo) ListProducts(_ context.Context) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

type fakeRewardRepo struct {
	rewards map[string]*domain.Reward
}

func newFakeRewardRepo(rewards ...*domain.Reward) *fakeRewardRepo {
	repo := &fakeRewardRepo{rewards: make(map[string]*domain.Reward)}
	for _, r := range rewards {
		repo.rewards[r.ID] = r
	}
	return repo
}

func (f *fakeRewardRepo) GetRewardByID(_ context.Context, id string) (*domain.Reward, error) {
	if r, ok := f.rewards[id]; ok {
		return r, nil
	}
	return nil, postgres.ErrRewardNotFound
}

func (f *fakeRewardRepo) ListActiveRewards(_ context.Context) ([]*domain.Reward, error) {
	var out []*domain.Reward
	for _, r := range f.rewards {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]*domain.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, postgres.ErrOrderNotFound
}

func (f *fakeOrderRepo) GetOrdersByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListOrders(_ context.Context) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return postgres.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) MarkPointsSettled(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return postgres.ErrOrderNotFound
	}
	o.PointsSettled = true
	return nil
}

func (f *fakeOrderRepo) GetUnsettledOrders(_ context.Context, limit int) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Order
	for _, o := range f.orders {
		if !o.PointsSettled {
			out = append(out, o)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type ledgerEntry struct {
	reference string
	amount    int64
}

type fakePointsRepo struct {
	mu        sync.Mutex
	entries   map[string][]ledgerEntry
	settleErr error
	accrueErr error
}

func newFakePointsRepo() *fakePointsRepo {
	return &fakePointsRepo{entries: make(map[string][]ledgerEntry)}
}

func (f *fakePointsRepo) balanceLocked(userID string) int64 {
	var sum int64
	for _, e := range f.entries[userID] {
		sum += e.amount
	}
	return sum
}

func (f *fakePointsRepo) Balance(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balanceLocked(userID), nil
}

func (f *fakePointsRepo) Accrue(_ context.Context, userID, reference string, points int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.accrueErr != nil {
		return f.accrueErr
	}
	f.entries[userID] = append(f.entries[userID], ledgerEntry{reference: reference, amount: points})
	return nil
}

func (f *fakePointsRepo) SettleWithLock(_ context.Context, userID, orderID string, earned, spent int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settleErr != nil {
		return f.settleErr
	}
	for _, e := range f.entries[userID] {
		if e.reference == orderID {
			return nil
		}
	}
	if f.balanceLocked(userID)+earned-spent < 0 {
		return postgres.ErrInsufficientPoints
	}
	if earned > 0 {
		f.entries[userID] = append(f.entries[userID], ledgerEntry{reference: orderID, amount: earned})
	}
	if spent > 0 {
		f.entries[userID] = append(f.entries[userID], ledgerEntry{reference: orderID, amount: -spent})
	}
	return nil
}

func (f *fakePointsRepo) GetRedemptions(_ context.Context, userID string) ([]*domain.PointTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.PointTransaction
	for _, e := range f.entries[userID] {
		if e.amount < 0 {
			out = append(out, &domain.PointTransaction{
				UserID:    userID,
				Reference: e.reference,
				Amount:    -e.amount,
				Type:      domain.TransactionTypeRedemption,
			})
		}
	}
	return out, nil
}
