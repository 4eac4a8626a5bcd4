// Package testutil wires the auth engine against an in-memory sqlite store for tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appapproval "github.com/gohub-app/gohub/internal/application/approval"
	appuser "github.com/gohub-app/gohub/internal/application/user"
	"github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/domain/shared"
	"github.com/gohub-app/gohub/internal/domain/user"
	"github.com/gohub-app/gohub/internal/infrastructure/auth"
	"github.com/gohub-app/gohub/internal/infrastructure/persistence/models"
	"github.com/gohub-app/gohub/internal/infrastructure/repository"
	"github.com/gohub-app/gohub/internal/shared/config"
	"github.com/gohub-app/gohub/internal/shared/db"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

// Clock is a settable time source shared by the token codec and the engine.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type Harness struct {
	DB           *gorm.DB
	Clock        *Clock
	Approvals    approval.Repository
	Users        user.Repository
	Sessions     user.SessionRepository
	DeviceLogs   user.DeviceLogRepository
	Tokens       *auth.JWTService
	Transactions *db.TransactionManager
	Auth         *appuser.AuthService
	Approval     *appapproval.Service
}

// OpenSQLite returns a migrated in-memory database closed at test cleanup.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

// NewHarness builds the engine over a fresh database.
func NewHarness(t testing.TB, opts ...Option) *Harness {
	t.Helper()

	h := &Harness{
		DB:    OpenSQLite(t),
		Clock: NewClock(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)),
	}
	log := logger.NewNopLogger()

	h.Approvals = repository.NewApprovalRepository(h.DB, log)
	h.Users = repository.NewUserRepository(h.DB, log)
	h.Sessions = repository.NewSessionRepository(h.DB)
	h.DeviceLogs = repository.NewDeviceLogRepository(h.DB)
	h.Transactions = db.NewTransactionManager(h.DB, 5*time.Second)

	for _, opt := range opts {
		opt(h)
	}

	tokens, err := auth.NewJWTService(config.JWTConfig{
		Secret:           "harness-secret",
		AccessExpMinutes: 30,
		RefreshExpDays:   7,
	}, auth.WithClock(h.Clock.Now))
	require.NoError(t, err)
	h.Tokens = tokens

	h.Auth = appuser.NewAuthService(appuser.Dependencies{
		UserRepo:      h.Users,
		ApprovalRepo:  h.Approvals,
		SessionRepo:   h.Sessions,
		DeviceLogRepo: h.DeviceLogs,
		Hasher:        auth.NewBcryptPasswordHasher(bcrypt.MinCost),
		Tokens:        h.Tokens,
		Transactions:  h.Transactions,
		Clock:         h.Clock.Now,
		Logger:        log,
	})
	h.Approval = appapproval.NewService(h.Approvals, h.Transactions, log)
	return h
}

// Option customises a Harness before the engine is built.
type Option func(*Harness)

// WithDeviceLogRepository swaps the audit store.
func WithDeviceLogRepository(repo user.DeviceLogRepository) Option {
	return func(h *Harness) { h.DeviceLogs = repo }
}

// SeedApproval inserts an allow-list entry.
func (h *Harness) SeedApproval(t testing.TB, number, name string, paid bool) *approval.ApprovedRegistration {
	t.Helper()
	rn, err := shared.NewRegistrationNumber(number)
	require.NoError(t, err)
	entry, err := approval.NewApprovedRegistration(rn, name, paid)
	require.NoError(t, err)
	require.NoError(t, h.Approvals.Create(context.Background(), entry))
	return entry
}

// ActiveSessions counts active rows for userID.
func (h *Harness) ActiveSessions(t testing.TB, userID string) int64 {
	t.Helper()
	n, err := h.Sessions.CountActiveByUserID(context.Background(), userID)
	require.NoError(t, err)
	return n
}
