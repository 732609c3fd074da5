package mcpgate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/relaymesh/mcpgate/domain"
)

// TokenService handles bearer token issuance and validation.
type TokenService struct {
	store    domain.TokenStore
	tokenTTL time.Duration
	now      func() time.Time
}

// NewTokenService creates a new TokenService instance.
func NewTokenService(store domain.TokenStore, tokenTTL time.Duration) *TokenService {
	return &TokenService{
		store:    store,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Issue mints an access token for userID and persists it with the configured
// expiry. Pure allocation: no verification happens here, the confirm step has
// already done it.
func (s *TokenService) Issue(ctx context.Context, userID string) (*domain.AccessToken, error) {
	now := s.now()
	token := &domain.AccessToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	if err := s.store.Save(ctx, token, s.tokenTTL); err != nil {
		return nil, fmt.Errorf("failed to store access token: %w", err)
	}

	log.Debug().Str("user_id", userID).Time("expires_at", token.ExpiresAt).Msg("access token issued")

	return token, nil
}

// Validate looks the token up and checks its expiry. Valid strictly before
// ExpiresAt, invalid at and after it. Never mutates state, never extends
// expiry.
func (s *TokenService) Validate(ctx context.Context, tokenValue string) (*domain.AccessToken, error) {
	token, err := s.store.Get(ctx, tokenValue)
	if err != nil {
		return nil, ErrTokenNotFound
	}

	if !token.Valid(s.now()) {
		return nil, ErrTokenExpired
	}

	return token, nil
}

// IsValid returns the boolean verdict used by the protected-resource gate.
func (s *TokenService) IsValid(ctx context.Context, tokenValue string) bool {
	_, err := s.Validate(ctx, tokenValue)
	return err == nil
}
