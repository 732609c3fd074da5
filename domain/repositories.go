package domain

import (
	"context"
	"time"
)

// SessionStore persists authorization sessions keyed by code. Implementations
// must honor the ttl passed to Save with a store-level expiry in addition to
// the record's own ExpiresAt field.
type SessionStore interface {
	// Save stores the session under its code with the given time-to-live.
	Save(ctx context.Context, session *AuthSession, ttl time.Duration) error
	// Get returns the session for code, or an error if absent.
	Get(ctx context.Context, code string) (*AuthSession, error)
	// Take atomically removes and returns the session for code. A second Take
	// with the same code must fail as not found.
	Take(ctx context.Context, code string) (*AuthSession, error)
	// Delete removes the session for code. Deleting an absent code is not an error.
	Delete(ctx context.Context, code string) error
}

// TokenStore persists access token records keyed by token value.
type TokenStore interface {
	Save(ctx context.Context, token *AccessToken, ttl time.Duration) error
	Get(ctx context.Context, token string) (*AccessToken, error)
	Delete(ctx context.Context, token string) error
}
