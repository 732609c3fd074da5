//nolint:varnamelen
package echo

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	mcpgate "github.com/relaymesh/mcpgate"
	"github.com/relaymesh/mcpgate/api"
	autherrors "github.com/relaymesh/mcpgate/errors"
)

// AuthAPI struct to hold dependencies.
type AuthAPI struct {
	service         *mcpgate.AuthService
	confirmationURL string
	publicURL       string
	codeTTL         time.Duration
}

// NewAuthAPI initializes the authorization API. confirmationURL is the
// human-facing page (a separate website) where the displayed code is entered;
// publicURL is this gateway's externally visible base URL.
func NewAuthAPI(service *mcpgate.AuthService, confirmationURL, publicURL string, codeTTL time.Duration) *AuthAPI {
	return &AuthAPI{
		service:         service,
		confirmationURL: confirmationURL,
		publicURL:       publicURL,
		codeTTL:         codeTTL,
	}
}

// RegisterRoutes registers the authorization routes.
func (a *AuthAPI) RegisterRoutes(e *echo.Echo) {
	e.GET("/authorize", a.AuthorizeHandler)
	e.POST("/api/authorize", a.APIAuthorizeHandler)
	e.GET("/callback", a.CallbackHandler)
	e.POST("/confirm", a.ConfirmHandler)

	e.GET("/health", a.HealthHandler)
	e.GET("/.well-known/oauth-authorization-server", a.AuthServerMetadataHandler)
	e.GET("/.well-known/oauth-protected-resource", a.ProtectedResourceMetadataHandler)
}

// AuthorizeHandler is the redirect deployment variant of the code issuer: it
// issues a fresh code and sends the user agent to the confirmation page with
// the code and state attached.
func (a *AuthAPI) AuthorizeHandler(c echo.Context) error {
	state := c.QueryParam("state")
	redirectURI := c.QueryParam("redirect_uri")

	session, err := a.service.IssueCode(c.Request().Context(), state, redirectURI)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue authorization code")
		return c.JSON(http.StatusInternalServerError, autherrors.NewServerError("failed to issue authorization code"))
	}

	return c.Redirect(http.StatusFound, a.confirmationPageURL(session.Code, session.State))
}

// APIAuthorizeHandler is the JSON deployment variant: it returns the code and
// a pre-built confirmation URL instead of redirecting.
func (a *AuthAPI) APIAuthorizeHandler(c echo.Context) error {
	state := c.FormValue("state")
	redirectURI := c.FormValue("redirect_uri")

	session, err := a.service.IssueCode(c.Request().Context(), state, redirectURI)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue authorization code")
		return c.JSON(http.StatusInternalServerError, autherrors.NewServerError("failed to issue authorization code"))
	}

	return c.JSON(http.StatusOK, api.AuthorizeResponse{
		Code:            session.Code,
		State:           session.State,
		VerificationURI: a.confirmationPageURL(session.Code, session.State),
		ExpiresIn:       int(a.codeTTL.Seconds()),
	})
}

// CallbackHandler finishes the exchange from a query-parameter callback.
func (a *AuthAPI) CallbackHandler(c echo.Context) error {
	return a.confirm(c,
		c.QueryParam("code"),
		c.QueryParam("state"),
		c.QueryParam("redirect_uri"),
		c.QueryParam("code_verifier"),
	)
}

// ConfirmHandler finishes the exchange from a form submission.
func (a *AuthAPI) ConfirmHandler(c echo.Context) error {
	return a.confirm(c,
		c.FormValue("code"),
		c.FormValue("state"),
		c.FormValue("redirect_uri"),
		c.FormValue("code_verifier"),
	)
}

// confirm is the shared path behind both confirmation entry points. The two
// are equivalent by contract: same checks, same single-use enforcement.
func (a *AuthAPI) confirm(c echo.Context, code, state, redirectURI, verifier string) error {
	if code == "" || state == "" {
		return c.JSON(http.StatusBadRequest, autherrors.NewMissingParameters("code and state are required"))
	}

	token, err := a.service.Confirm(c.Request().Context(), code, state, verifier)
	if err != nil {
		switch {
		case errors.Is(err, mcpgate.ErrSessionNotFound):
			return c.JSON(http.StatusBadRequest, autherrors.NewInvalidCode("invalid or expired code"))
		case errors.Is(err, mcpgate.ErrStateMismatch):
			return c.JSON(http.StatusBadRequest, autherrors.NewInvalidState("state mismatch"))
		case errors.Is(err, mcpgate.ErrInvalidVerifier):
			return c.JSON(http.StatusBadRequest, autherrors.NewInvalidGrant("code verifier rejected"))
		}
		log.Error().Err(err).Str("code", code).Msg("confirmation failed")
		return c.JSON(http.StatusInternalServerError, autherrors.NewServerError("failed to complete the exchange"))
	}

	if redirectURI != "" {
		target, err := url.Parse(redirectURI)
		if err != nil {
			// Token is already minted; surface it on the page rather than dropping it.
			log.Warn().Err(err).Str("redirect_uri", redirectURI).Msg("unusable redirect target, rendering page instead")
			return a.renderConfirmed(c, token.Token)
		}
		q := target.Query()
		q.Set("token", token.Token)
		q.Set("state", state)
		target.RawQuery = q.Encode()
		return c.Redirect(http.StatusFound, target.String())
	}

	return a.renderConfirmed(c, token.Token)
}

// HealthHandler reports liveness.
func (a *AuthAPI) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// AuthServerMetadataHandler serves the static discovery document for the
// authorization endpoints.
func (a *AuthAPI) AuthServerMetadataHandler(c echo.Context) error {
	baseURL := a.baseURL(c)

	return c.JSON(http.StatusOK, api.AuthorizationServerMetadata{
		Issuer:                        baseURL,
		AuthorizationEndpoint:         baseURL + "/authorize",
		ConfirmationEndpoint:          baseURL + "/confirm",
		CallbackEndpoint:              baseURL + "/callback",
		ResponseTypesSupported:        []string{"code"},
		CodeChallengeMethodsSupported: []string{"S256"},
	})
}

// ProtectedResourceMetadataHandler points MCP clients at the authorization
// server protecting /mcp.
func (a *AuthAPI) ProtectedResourceMetadataHandler(c echo.Context) error {
	baseURL := a.baseURL(c)

	return c.JSON(http.StatusOK, api.ProtectedResourceMetadata{
		Resource:               baseURL + "/mcp",
		AuthorizationServers:   []string{baseURL},
		BearerMethodsSupported: []string{"header"},
	})
}

func (a *AuthAPI) baseURL(c echo.Context) string {
	if a.publicURL != "" {
		return a.publicURL
	}
	return c.Scheme() + "://" + c.Request().Host
}

func (a *AuthAPI) confirmationPageURL(code, state string) string {
	q := url.Values{}
	q.Set("code", code)
	q.Set("state", state)
	return a.confirmationURL + "?" + q.Encode()
}
