package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gohub-app/gohub/internal/domain/shared"
)

// DeviceInfo identifies the client a session is bound to.
type DeviceInfo struct {
	DeviceID   string
	DeviceName string
	DeviceType string
	IPAddress  string
	UserAgent  string
}

// Session binds a user to one device. At most one session per user is active;
// deactivation is terminal for the row and a new login always creates a new row.
type Session struct {
	ID               string
	UserID           string
	DeviceID         string
	DeviceName       string
	DeviceType       string
	IPAddress        string
	UserAgent        string
	AccessTokenHash  string
	RefreshTokenHash string
	Active           bool
	ExpiresAt        time.Time
	LastActivityAt   time.Time
	CreatedAt        time.Time
}

// NewSession creates an active session. Token digests, not raw tokens, are stored.
func NewSession(userID string, device DeviceInfo, accessTokenHash, refreshTokenHash string, now, expiresAt time.Time) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if device.DeviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}
	if !expiresAt.After(now) {
		return nil, fmt.Errorf("session expiry must be in the future")
	}

	return &Session{
		ID:               uuid.NewString(),
		UserID:           userID,
		DeviceID:         device.DeviceID,
		DeviceName:       device.DeviceName,
		DeviceType:       device.DeviceType,
		IPAddress:        device.IPAddress,
		UserAgent:        device.UserAgent,
		AccessTokenHash:  accessTokenHash,
		RefreshTokenHash: refreshTokenHash,
		Active:           true,
		ExpiresAt:        expiresAt,
		LastActivityAt:   now,
		CreatedAt:        now,
	}, nil
}

func (s *Session) IsExpiredAt(now time.Time) bool {
	return shared.IsExpiredAt(s.ExpiresAt, now)
}

// DeviceLabel is the human label used in eviction notices.
func (s *Session) DeviceLabel() string {
	if s.DeviceName == "" {
		return "Device: Unknown"
	}
	return "Device: " + s.DeviceName
}

// SessionRepository is the Session Store. Methods join the caller's transaction
// when the context carries one.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error

	// GetActiveByUserID returns the user's active session and, inside a
	// transaction, locks its row until commit. Returns nil, nil when none.
	GetActiveByUserID(ctx context.Context, userID string) (*Session, error)

	GetByRefreshTokenHash(ctx context.Context, hash string) (*Session, error)

	GetByAccessTokenHash(ctx context.Context, hash string) (*Session, error)

	// Deactivate clears the active flag only if the row is still active.
	// It reports whether this call performed the transition.
	Deactivate(ctx context.Context, sessionID string) (bool, error)

	// DeactivateByUserAndDevice returns the number of rows transitioned.
	DeactivateByUserAndDevice(ctx context.Context, userID, deviceID string) (int64, error)

	// RotateAccessToken stores a new access digest on an active session.
	RotateAccessToken(ctx context.Context, sessionID, accessTokenHash string, at time.Time) (bool, error)

	// DeactivateExpired closes active sessions whose expiry is before now.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)

	CountActiveByUserID(ctx context.Context, userID string) (int64, error)
}
