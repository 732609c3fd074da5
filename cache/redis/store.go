// Package redis provides redis-backed session and token stores. Records are
// stored as JSON values with a per-key expiry; Take uses GETDEL so claiming a
// code is a single atomic operation on the server.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/relaymesh/mcpgate/domain"
)

// SessionStore implements domain.SessionStore using Redis.
type SessionStore struct {
	client *redis.Client
	prefix string // Optional prefix for keys
}

// NewSessionStore creates a new [SessionStore] instance.
func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: prefix,
	}
}

func (r *SessionStore) key(code string) string {
	return fmt.Sprintf("%s:session:%s", r.prefix, code)
}

// Save stores a session as JSON with the given TTL.
func (r *SessionStore) Save(ctx context.Context, session *domain.AuthSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, r.key(session.Code), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session in Redis: %w", err)
	}

	return nil
}

// Get retrieves a session from Redis.
func (r *SessionStore) Get(ctx context.Context, code string) (*domain.AuthSession, error) {
	payload, err := r.client.Get(ctx, r.key(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	return decodeSession(payload)
}

// Take removes and returns a session in one server-side operation (GETDEL),
// so concurrent confirmations of the same code yield at most one winner.
func (r *SessionStore) Take(ctx context.Context, code string) (*domain.AuthSession, error) {
	payload, err := r.client.GetDel(ctx, r.key(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to take session from Redis: %w", err)
	}

	return decodeSession(payload)
}

// Delete removes a session from Redis.
func (r *SessionStore) Delete(ctx context.Context, code string) error {
	if err := r.client.Del(ctx, r.key(code)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}

func decodeSession(payload []byte) (*domain.AuthSession, error) {
	var session domain.AuthSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// TokenStore implements domain.TokenStore using Redis.
type TokenStore struct {
	client *redis.Client
	prefix string
}

// NewTokenStore creates a new [TokenStore] instance.
func NewTokenStore(client *redis.Client, prefix string) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: prefix,
	}
}

func (r *TokenStore) key(token string) string {
	return fmt.Sprintf("%s:token:%s", r.prefix, token)
}

// Save stores a token record as JSON with the given TTL.
func (r *TokenStore) Save(ctx context.Context, token *domain.AccessToken, ttl time.Duration) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := r.client.Set(ctx, r.key(token.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set token in Redis: %w", err)
	}

	return nil
}

// Get retrieves a token record from Redis.
func (r *TokenStore) Get(ctx context.Context, tokenValue string) (*domain.AccessToken, error) {
	payload, err := r.client.Get(ctx, r.key(tokenValue)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("token not found")
		}
		return nil, fmt.Errorf("failed to get token from Redis: %w", err)
	}

	var token domain.AccessToken
	if err := json.Unmarshal(payload, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// Delete removes a token from Redis.
func (r *TokenStore) Delete(ctx context.Context, tokenValue string) error {
	if err := r.client.Del(ctx, r.key(tokenValue)).Err(); err != nil {
		return fmt.Errorf("failed to delete token from Redis: %w", err)
	}
	return nil
}
