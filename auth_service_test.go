package mcpgate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaymesh/mcpgate/cache"
	"github.com/relaymesh/mcpgate/domain"
)

func newTestAuthService(t *testing.T) (*AuthService, domain.SessionStore) {
	t.Helper()

	sessions := cache.NewMemorySessionStore()
	tokens := cache.NewMemoryTokenStore()
	t.Cleanup(func() {
		_ = sessions.Close()
		_ = tokens.Close()
	})

	tokenService := NewTokenService(tokens, 24*time.Hour)
	return NewAuthService(sessions, tokenService, "WLVY", 5*time.Minute), sessions
}

func TestAuthService_IssueCode(t *testing.T) {
	svc, sessions := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.IssueCode(ctx, "client-state", "https://client.example/cb")
	require.NoError(t, err)

	assert.Regexp(t, `^WLVY-[A-Z0-9]{4}$`, session.Code)
	assert.Equal(t, "client-state", session.State)
	assert.Equal(t, "https://client.example/cb", session.RedirectURI)
	assert.Equal(t, ChallengeFromVerifier(session.CodeVerifier), session.CodeChallenge)
	assert.Equal(t, session.CreatedAt.Add(5*time.Minute), session.ExpiresAt)

	stored, err := sessions.Get(ctx, session.Code)
	require.NoError(t, err)
	assert.Equal(t, session.State, stored.State)
}

func TestAuthService_IssueCode_GeneratesStateWhenEmpty(t *testing.T) {
	svc, _ := newTestAuthService(t)

	session, err := svc.IssueCode(context.Background(), "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, session.State)
}

func TestAuthService_Confirm_HappyPath(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.IssueCode(ctx, "s1", "")
	require.NoError(t, err)

	token, err := svc.Confirm(ctx, session.Code, "s1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, UserIDForCode(session.Code), token.UserID)
}

func TestAuthService_Confirm_CodeIsSingleUse(t *testing.T) {
	svc, sessions := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.IssueCode(ctx, "s1", "")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, session.Code, "s1", "")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, session.Code, "s1", "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = sessions.Get(ctx, session.Code)
	assert.Error(t, err, "session must be gone after a successful confirmation")
}

func TestAuthService_Confirm_UnknownCode(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Confirm(context.Background(), "WLVY-ZZZZ", "s1", "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAuthService_Confirm_StateMismatchRestoresSession(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.IssueCode(ctx, "s1", "")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, session.Code, "wrong-state", "")
	assert.ErrorIs(t, err, ErrStateMismatch)

	// The rejected attempt must not burn the code.
	token, err := svc.Confirm(ctx, session.Code, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, UserIDForCode(session.Code), token.UserID)
}

func TestAuthService_Confirm_ExpiredSession(t *testing.T) {
	svc, sessions := newTestAuthService(t)
	ctx := context.Background()

	// Record-level expiry in the past while the store entry is still present.
	now := time.Now()
	session := &domain.AuthSession{
		Code:      "WLVY-AB12",
		State:     "s1",
		CreatedAt: now.Add(-10 * time.Minute),
		ExpiresAt: now.Add(-5 * time.Minute),
	}
	require.NoError(t, sessions.Save(ctx, session, time.Hour))

	_, err := svc.Confirm(ctx, "WLVY-AB12", "s1", "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAuthService_Confirm_VerifierChecks(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.IssueCode(ctx, "s1", "")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, session.Code, "s1", "not-the-verifier")
	assert.ErrorIs(t, err, ErrInvalidVerifier)

	// A failed verifier check restores the session; the right verifier wins.
	token, err := svc.Confirm(ctx, session.Code, "s1", session.CodeVerifier)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
}

func TestAuthService_Confirm_IssuedTokenValidates(t *testing.T) {
	sessions := cache.NewMemorySessionStore()
	tokens := cache.NewMemoryTokenStore()
	t.Cleanup(func() {
		_ = sessions.Close()
		_ = tokens.Close()
	})

	tokenService := NewTokenService(tokens, 24*time.Hour)
	svc := NewAuthService(sessions, tokenService, "WLVY", 5*time.Minute)
	ctx := context.Background()

	session, err := svc.IssueCode(ctx, "s1", "")
	require.NoError(t, err)

	token, err := svc.Confirm(ctx, session.Code, "s1", "")
	require.NoError(t, err)

	validated, err := tokenService.Validate(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, token.UserID, validated.UserID)
}
