package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gohub-app/gohub/internal/shared/biztime"
	"github.com/gohub-app/gohub/internal/shared/config"
	apperrors "github.com/gohub-app/gohub/internal/shared/errors"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

func (t TokenType) label() string {
	return string(t) + " token"
}

// Claims carries the subject (user id), the token type and a random jti.
type Claims struct {
	TokenType TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

type JWTService struct {
	secret          []byte
	method          jwt.SigningMethod
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	now             biztime.Clock
}

type JWTOption func(*JWTService)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(clock biztime.Clock) JWTOption {
	return func(s *JWTService) {
		s.now = clock
	}
}

// NewJWTService builds the token codec. Only the HMAC family is accepted.
func NewJWTService(cfg config.JWTConfig, opts ...JWTOption) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", alg)
	}

	s := &JWTService{
		secret:          []byte(cfg.Secret),
		method:          method,
		accessLifetime:  cfg.AccessLifetime(),
		refreshLifetime: cfg.RefreshLifetime(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.now = s.now.OrDefault()
	return s, nil
}

// Issue signs a fresh access/refresh pair for userID.
func (s *JWTService) Issue(userID string) (*TokenPair, error) {
	accessToken, accessExp, err := s.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}

	jti, err := randomID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := s.now()
	refreshExp := now.Add(s.refreshLifetime)
	refreshToken, err := s.sign(&Claims{
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// IssueAccessToken signs a single access token. Every token carries a random
// jti so two tokens issued in the same second never share a digest.
func (s *JWTService) IssueAccessToken(userID string) (string, time.Time, error) {
	jti, err := randomID()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := s.now()
	exp := now.Add(s.accessLifetime)
	token, err := s.sign(&Claims{
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, exp, nil
}

// Decode verifies the signature, requires an expiry and checks the token type.
// It returns a token-expired error when only the expiry check failed.
func (s *JWTService) Decode(tokenString string, expected TokenType) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewTokenExpiredError(expected.label())
		}
		return nil, apperrors.NewTokenInvalidError(expected.label())
	}

	if claims.TokenType != expected || claims.Subject == "" {
		return nil, apperrors.NewTokenInvalidError(expected.label())
	}
	return claims, nil
}

func (s *JWTService) AccessLifetime() time.Duration {
	return s.accessLifetime
}

func (s *JWTService) RefreshLifetime() time.Duration {
	return s.refreshLifetime
}

func (s *JWTService) sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

func randomID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
