package api

// AuthorizeResponse is the JSON payload of the API authorize variant: the
// fresh code plus a pre-built confirmation URL the caller shows to a human.
type AuthorizeResponse struct {
	Code            string `json:"code"`
	State           string `json:"state"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// AuthorizationServerMetadata is the static discovery document describing the
// gateway's authorization endpoints.
type AuthorizationServerMetadata struct {
	Issuer                        string   `json:"issuer"`
	AuthorizationEndpoint         string   `json:"authorization_endpoint"`
	ConfirmationEndpoint          string   `json:"confirmation_endpoint"`
	CallbackEndpoint              string   `json:"callback_endpoint"`
	ResponseTypesSupported        []string `json:"response_types_supported"`
	CodeChallengeMethodsSupported []string `json:"code_challenge_methods_supported"`
}

// ProtectedResourceMetadata points MCP clients at the authorization server
// guarding the /mcp endpoint.
type ProtectedResourceMetadata struct {
	Resource               string   `json:"resource"`
	AuthorizationServers   []string `json:"authorization_servers"`
	BearerMethodsSupported []string `json:"bearer_methods_supported"`
}
