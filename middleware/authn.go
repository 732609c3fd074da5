package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	mcpgate "github.com/relaymesh/mcpgate"
	"github.com/relaymesh/mcpgate/domain"
	autherrors "github.com/relaymesh/mcpgate/errors"
)

// tokenContextKey is the echo context key holding the validated token record.
const tokenContextKey = "_auth_token"

// ExtractBearerToken returns the bearer value from an Authorization header,
// or "" when no usable token is present. The header must be exactly the
// two-part "Bearer <token>" form with a case-sensitive scheme keyword; a
// missing header, wrong scheme, or malformed structure all yield no token and
// are treated as unauthenticated by callers, never as an error.
func ExtractBearerToken(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}

	return parts[1]
}

// RequireToken returns an echo middleware gating protected routes. Requests
// without a valid bearer token get a 401 with the structured unauthorized
// payload; valid requests proceed with the token record on the context.
func RequireToken(tokens *mcpgate.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenValue := ExtractBearerToken(c.Request().Header.Get("Authorization"))
			if tokenValue == "" {
				return c.JSON(http.StatusUnauthorized, autherrors.NewUnauthorized("missing bearer token"))
			}

			token, err := tokens.Validate(c.Request().Context(), tokenValue)
			if err != nil {
				log.Debug().Err(err).Msg("rejected bearer token")
				return c.JSON(http.StatusUnauthorized, autherrors.NewInvalidToken("token is invalid or expired"))
			}

			c.Set(tokenContextKey, token)

			return next(c)
		}
	}
}

// TokenFromContext retrieves the validated token record stored by RequireToken.
func TokenFromContext(c echo.Context) (*domain.AccessToken, bool) {
	token, ok := c.Get(tokenContextKey).(*domain.AccessToken)
	return token, ok
}
