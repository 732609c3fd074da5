package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/relaymesh/mcpgate/domain"
)

// MemorySessionStore implements domain.SessionStore using ttlcache. Suitable
// for single-instance deployments; each store owns its own cache, there is no
// process-wide registry.
type MemorySessionStore struct {
	mu    sync.Mutex
	cache *ttlcache.Cache[string, *domain.AuthSession]
}

// NewMemorySessionStore creates a new in-memory session store with automatic
// cleanup of expired entries.
func NewMemorySessionStore() *MemorySessionStore {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, *domain.AuthSession](),
	)

	// Start the cleanup process
	go cache.Start()

	return &MemorySessionStore{cache: cache}
}

// Save implements domain.SessionStore.Save.
func (s *MemorySessionStore) Save(_ context.Context, session *domain.AuthSession, ttl time.Duration) error {
	s.cache.Set(session.Code, session, ttl)
	return nil
}

// Get implements domain.SessionStore.Get.
func (s *MemorySessionStore) Get(_ context.Context, code string) (*domain.AuthSession, error) {
	item := s.cache.Get(code)
	if item == nil {
		return nil, fmt.Errorf("session not found")
	}
	return item.Value(), nil
}

// Take implements domain.SessionStore.Take. The mutex makes the get-then-delete
// a single claim within this process; only one caller can win a code.
func (s *MemorySessionStore) Take(_ context.Context, code string) (*domain.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.cache.Get(code)
	if item == nil {
		return nil, fmt.Errorf("session not found")
	}
	s.cache.Delete(code)
	return item.Value(), nil
}

// Delete implements domain.SessionStore.Delete.
func (s *MemorySessionStore) Delete(_ context.Context, code string) error {
	s.cache.Delete(code)
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemorySessionStore) Close() error {
	s.cache.Stop()
	return nil
}

// MemoryTokenStore implements domain.TokenStore using ttlcache.
type MemoryTokenStore struct {
	cache *ttlcache.Cache[string, *domain.AccessToken]
}

// NewMemoryTokenStore creates a new in-memory token store with automatic
// cleanup of expired entries.
func NewMemoryTokenStore() *MemoryTokenStore {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, *domain.AccessToken](),
	)

	go cache.Start()

	return &MemoryTokenStore{cache: cache}
}

// Save implements domain.TokenStore.Save.
func (s *MemoryTokenStore) Save(_ context.Context, token *domain.AccessToken, ttl time.Duration) error {
	s.cache.Set(token.Token, token, ttl)
	return nil
}

// Get implements domain.TokenStore.Get.
func (s *MemoryTokenStore) Get(_ context.Context, token string) (*domain.AccessToken, error) {
	item := s.cache.Get(token)
	if item == nil {
		return nil, fmt.Errorf("token not found")
	}
	return item.Value(), nil
}

// Delete implements domain.TokenStore.Delete.
func (s *MemoryTokenStore) Delete(_ context.Context, token string) error {
	s.cache.Delete(token)
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemoryTokenStore) Close() error {
	s.cache.Stop()
	return nil
}
