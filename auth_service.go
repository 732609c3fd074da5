package mcpgate

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/relaymesh/mcpgate/domain"
)

// AuthService drives the authorization code lifecycle: issue a code, wait for
// the out-of-band human confirmation, exchange the code for a bearer token.
type AuthService struct {
	sessions   domain.SessionStore
	tokens     *TokenService
	codePrefix string
	codeTTL    time.Duration
	now        func() time.Time
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(sessions domain.SessionStore, tokens *TokenService, codePrefix string, codeTTL time.Duration) *AuthService {
	return &AuthService{
		sessions:   sessions,
		tokens:     tokens,
		codePrefix: codePrefix,
		codeTTL:    codeTTL,
		now:        time.Now,
	}
}

// IssueCode generates a fresh code with its PKCE pair and persists the
// session. A caller-supplied state round-trips unchanged; an empty state is
// replaced with a generated one. Store failure propagates, there is no retry.
func (s *AuthService) IssueCode(ctx context.Context, state, redirectURI string) (*domain.AuthSession, error) {
	code, err := GenerateCode(s.codePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	verifier, challenge, err := GeneratePKCEPair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PKCE pair: %w", err)
	}

	if state == "" {
		state = GenerateState()
	}

	now := s.now()
	session := &domain.AuthSession{
		Code:          code,
		State:         state,
		CodeChallenge: challenge,
		CodeVerifier:  verifier,
		RedirectURI:   redirectURI,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.codeTTL),
	}

	if err := s.sessions.Save(ctx, session, s.codeTTL); err != nil {
		return nil, fmt.Errorf("failed to store authorization session: %w", err)
	}

	log.Info().Str("code", code).Time("expires_at", session.ExpiresAt).Msg("authorization code issued")

	return session, nil
}

// Confirm finishes the exchange for a code. The session is claimed from the
// store in a single operation, so a repeated confirmation with the same code
// fails as not found. On a state mismatch (or a failed verifier check) the
// session is put back untouched so a correctly-stated retry still works.
// verifier is optional: when empty the challenge is not re-validated.
func (s *AuthService) Confirm(ctx context.Context, code, state, verifier string) (*domain.AccessToken, error) {
	session, err := s.sessions.Take(ctx, code)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	if session.Expired(s.now()) {
		// Store TTL has not purged it yet; the record-level expiry wins.
		return nil, ErrSessionNotFound
	}

	if session.State != state {
		s.restore(ctx, session)
		return nil, ErrStateMismatch
	}

	if verifier != "" && !ValidatePKCEChallenge(session.CodeChallenge, verifier) {
		s.restore(ctx, session)
		return nil, ErrInvalidVerifier
	}

	token, err := s.tokens.Issue(ctx, UserIDForCode(session.Code))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token for code %s: %w", session.Code, err)
	}

	log.Info().Str("code", session.Code).Str("user_id", token.UserID).Msg("authorization code confirmed")

	return token, nil
}

// restore puts a claimed session back with its remaining lifetime after a
// rejected confirmation attempt.
func (s *AuthService) restore(ctx context.Context, session *domain.AuthSession) {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.sessions.Save(ctx, session, ttl); err != nil {
		log.Warn().Err(err).Str("code", session.Code).Msg("failed to restore session after rejected confirmation")
	}
}
