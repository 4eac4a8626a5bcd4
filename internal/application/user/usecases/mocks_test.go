package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gohub-app/gohub/internal/domain/user"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) GetByRegistrationNumber(ctx context.Context, number string) (*user.User, error) {
	args := m.Called(ctx, number)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, s *user.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSessionRepository) GetActiveByUserID(ctx context.Context, userID string) (*user.Session, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*user.Session)
	return s, args.Error(1)
}

func (m *mockSessionRepository) GetByRefreshTokenHash(ctx context.Context, hash string) (*user.Session, error) {
	args := m.Called(ctx, hash)
	s, _ := args.Get(0).(*user.Session)
	return s, args.Error(1)
}

func (m *mockSessionRepository) GetByAccessTokenHash(ctx context.Context, hash string) (*user.Session, error) {
	args := m.Called(ctx, hash)
	s, _ := args.Get(0).(*user.Session)
	return s, args.Error(1)
}

func (m *mockSessionRepository) Deactivate(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepository) DeactivateByUserAndDevice(ctx context.Context, userID, deviceID string) (int64, error) {
	args := m.Called(ctx, userID, deviceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepository) RotateAccessToken(ctx context.Context, id, hash string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, hash, at)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepository) CountActiveByUserID(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockDeviceLogRepository struct {
	mock.Mock
}

func (m *mockDeviceLogRepository) Append(ctx context.Context, e *user.DeviceLogEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockDeviceLogRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*user.DeviceLogEntry, error) {
	args := m.Called(ctx, userID, limit)
	entries, _ := args.Get(0).([]*user.DeviceLogEntry)
	return entries, args.Error(1)
}

// inlineTx runs the unit of work directly; the mocks do not care about isolation.
type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineTx) Bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

// plainHasher treats the hash as "h:" + password.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Verify(p, h string) bool      { return h == "h:"+p }
