package mcpgate

import "errors"

var (
	ErrSessionNotFound = errors.New("authorization code not found or expired")
	ErrStateMismatch   = errors.New("state does not match the pending authorization")
	ErrInvalidVerifier = errors.New("code verifier does not match the stored challenge")
	ErrTokenNotFound   = errors.New("token not found")
	ErrTokenExpired    = errors.New("token expired")
)
