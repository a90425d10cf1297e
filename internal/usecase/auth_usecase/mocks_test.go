package auth_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
	"github.com/shiyas-dx/Project/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	args := m.Called(ctx, ids)
	us, _ := args.Get(0).([]model.User)
	return us, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string, excludeUserID int64) (bool, error) {
	args := m.Called(ctx, username, excludeUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListNewestFirst(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	us, _ := args.Get(0).([]model.User)
	return us, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementTokenVersion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Mock: RefreshTokenRepository
// =====================

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *MockRefreshTokenRepository) MarkUsed(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteAllByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByID(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// =====================
// Mock: OutboxRepository
// =====================

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Enqueue(ctx context.Context, mail *model.EmailOutbox) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

func (m *MockOutboxRepository) ClaimDue(ctx context.Context, now time.Time, leaseUntil time.Time, limit int) ([]model.EmailOutbox, error) {
	args := m.Called(ctx, now, leaseUntil, limit)
	ms, _ := args.Get(0).([]model.EmailOutbox)
	return ms, args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	return m.Called(ctx, id, sentAt).Error(0)
}

func (m *MockOutboxRepository) MarkRetry(ctx context.Context, id int64, attempts int, next time.Time, lastErr string) error {
	return m.Called(ctx, id, attempts, next, lastErr).Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, id int64, attempts int, lastErr string) error {
	return m.Called(ctx, id, attempts, lastErr).Error(0)
}

// =====================
// Fake: TransactionManager
// =====================

// fakeTx runs fn directly against the mocks; only users and outbox are used by auth.
type fakeTx struct {
	users  *MockUserRepository
	outbox *MockOutboxRepository
	calls  int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	f.calls++
	return fn(fakeTxRepos{f})
}

type fakeTxRepos struct{ tx *fakeTx }

func (r fakeTxRepos) Users() repository.UserRepository { return r.tx.users }
func (r fakeTxRepos) Outbox() repository.OutboxRepository { return r.tx.outbox }
func (r fakeTxRepos) Products() repository.ProductRepository { return nil }
func (r fakeTxRepos) Inventory() repository.InventoryRepository { return nil }
func (r fakeTxRepos) Carts() repository.CartRepository { return nil }
func (r fakeTxRepos) Wishlists() repository.WishlistRepository { return nil }
func (r fakeTxRepos) Orders() repository.OrderRepository { return nil }
func (r fakeTxRepos) OrderItems() repository.OrderItemRepository { return nil }
func (r fakeTxRepos) RefreshTokens() repository.RefreshTokenRepository { return nil }
func (r fakeTxRepos) AuditLogs() repository.AuditLogRepository { return nil }

// =====================
// Stubs
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("rt-%d", s.n)
}

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type plainVerifier struct{}

func (plainVerifier) Verify(plain string, hashed string) bool { return hashed == "hashed:"+plain }

type stubIssuer struct{}

func (stubIssuer) IssueAccess(user model.User, now time.Time) (string, time.Time, error) {
	return "access-" + user.Username, now.Add(15 * time.Minute), nil
}

// stubActivation accepts exactly "good-token".
type stubActivation struct{}

func (stubActivation) IssueActivation(user model.User, now time.Time) (string, error) {
	return "good-token", nil
}

func (stubActivation) VerifyActivation(raw string, user model.User) error {
	if raw != "good-token" {
		return repository.ErrNotFound
	}
	return nil
}
