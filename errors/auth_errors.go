package errors

import "fmt"

// AuthError is the structured error payload surfaced to callers on every
// failed exchange or protected-resource access.
type AuthError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Error kinds for the code/token exchange
const (
	MissingParameters = "missing_parameters"
	InvalidCode       = "invalid_code"
	InvalidState      = "invalid_state"
	InvalidGrant      = "invalid_grant"
	InvalidToken      = "invalid_token"
	Unauthorized      = "unauthorized"
	ServerError       = "server_error"
)

// Common error constructors
func NewMissingParameters(description string) *AuthError {
	return &AuthError{
		Code:        MissingParameters,
		Description: description,
	}
}

func NewInvalidCode(description string) *AuthError {
	return &AuthError{
		Code:        InvalidCode,
		Description: description,
	}
}

func NewInvalidState(description string) *AuthError {
	return &AuthError{
		Code:        InvalidState,
		Description: description,
	}
}

func NewInvalidGrant(description string) *AuthError {
	return &AuthError{
		Code:        InvalidGrant,
		Description: description,
	}
}

func NewInvalidToken(description string) *AuthError {
	return &AuthError{
		Code:        InvalidToken,
		Description: description,
	}
}

func NewUnauthorized(description string) *AuthError {
	return &AuthError{
		Code:        Unauthorized,
		Description: description,
	}
}

func NewServerError(description string) *AuthError {
	return &AuthError{
		Code:        ServerError,
		Description: description,
	}
}
