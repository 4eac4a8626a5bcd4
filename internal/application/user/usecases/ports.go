package usecases

import (
	"context"
	"time"

	"github.com/gohub-app/gohub/internal/infrastructure/auth"
)

// TokenService is the token half of the credential codec.
type TokenService interface {
	Issue(userID string) (*auth.TokenPair, error)
	IssueAccessToken(userID string) (string, time.Time, error)
	Decode(token string, expected auth.TokenType) (*auth.Claims, error)
}

// TransactionRunner runs a unit of work in one store transaction. Bound applies
// the store timeout to work that runs outside a transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Bound(ctx context.Context) (context.Context, context.CancelFunc)
}
