package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaymesh/mcpgate/domain"
)

func testSession(code string) *domain.AuthSession {
	now := time.Now()
	return &domain.AuthSession{
		Code:      code,
		State:     "s1",
		CreatedAt: now,
		ExpiresAt: now.Add(5 * time.Minute),
	}
}

func TestMemorySessionStore_SaveAndGet(t *testing.T) {
	store := NewMemorySessionStore()
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("WLVY-AB12"), time.Minute))

	got, err := store.Get(ctx, "WLVY-AB12")
	require.NoError(t, err)
	assert.Equal(t, "WLVY-AB12", got.Code)
	assert.Equal(t, "s1", got.State)

	// Get does not consume the session.
	_, err = store.Get(ctx, "WLVY-AB12")
	assert.NoError(t, err)
}

func TestMemorySessionStore_GetUnknown(t *testing.T) {
	store := NewMemorySessionStore()
	t.Cleanup(func() { _ = store.Close() })

	_, err := store.Get(context.Background(), "WLVY-ZZZZ")
	assert.Error(t, err)
}

func TestMemorySessionStore_TakeIsSingleUse(t *testing.T) {
	store := NewMemorySessionStore()
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("WLVY-AB12"), time.Minute))

	got, err := store.Take(ctx, "WLVY-AB12")
	require.NoError(t, err)
	assert.Equal(t, "WLVY-AB12", got.Code)

	_, err = store.Take(ctx, "WLVY-AB12")
	assert.Error(t, err)
	_, err = store.Get(ctx, "WLVY-AB12")
	assert.Error(t, err)
}

func TestMemorySessionStore_TakeOnlyOneWinner(t *testing.T) {
	store := NewMemorySessionStore()
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("WLVY-AB12"), time.Minute))

	const claimers = 16
	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Take(ctx, "WLVY-AB12"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins, "exactly one claimer may win the code")
}

func TestMemorySessionStore_Delete(t *testing.T) {
	store := NewMemorySessionStore()
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("WLVY-AB12"), time.Minute))
	require.NoError(t, store.Delete(ctx, "WLVY-AB12"))

	_, err := store.Get(ctx, "WLVY-AB12")
	assert.Error(t, err)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "WLVY-ZZZZ"))
}

func TestMemorySessionStore_TTLExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("WLVY-AB12"), 20*time.Millisecond))

	time.Sleep(60 * time.Millisecond)

	_, err := store.Get(ctx, "WLVY-AB12")
	assert.Error(t, err, "expired session must read as absent")
	_, err = store.Take(ctx, "WLVY-AB12")
	assert.Error(t, err)
}

func TestMemoryTokenStore_SaveGetDelete(t *testing.T) {
	store := NewMemoryTokenStore()
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	now := time.Now()
	token := &domain.AccessToken{
		Token:     "tok-1",
		UserID:    "user-wlvy-ab12",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, token, time.Hour))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-wlvy-ab12", got.UserID)

	require.NoError(t, store.Delete(ctx, "tok-1"))
	_, err = store.Get(ctx, "tok-1")
	assert.Error(t, err)
}

func TestMemoryTokenStore_TTLExpiry(t *testing.T) {
	store := NewMemoryTokenStore()
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	now := time.Now()
	token := &domain.AccessToken{
		Token:     "tok-1",
		UserID:    "user-wlvy-ab12",
		CreatedAt: now,
		ExpiresAt: now.Add(20 * time.Millisecond),
	}
	require.NoError(t, store.Save(ctx, token, 20*time.Millisecond))

	time.Sleep(60 * time.Millisecond)

	_, err := store.Get(ctx, "tok-1")
	assert.Error(t, err, "expired token must read as absent")
}
