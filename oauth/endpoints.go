package oauth

// Fixed endpoints and client registration for the Claude OAuth flow.
const (
	// AuthorizeURL is the user-facing authorization endpoint.
	AuthorizeURL = "https://claude.ai/oauth/authorize"
	// TokenURL is the token exchange and refresh endpoint.
	TokenURL = "https://console.anthropic.com/v1/oauth/token"
	// OrganizationsURL lists the session's organizations in the cookie flow.
	OrganizationsURL = "https://claude.ai/api/organizations"

	// ClientID is the registered OAuth client.
	ClientID = "9d1c250a-e61b-44d9-88ed-5944d1962f5e"
	// RedirectURI is the registered callback.
	RedirectURI = "https://console.anthropic.com/oauth/code/callback"

	// Scopes is the full scope set for interactive authorization.
	Scopes = "org:create_api_key user:profile user:inference"
	// ScopesSetup is the reduced scope set for setup tokens.
	ScopesSetup = "user:inference"
)

// browserUserAgent is presented on cookie-flow requests so claude.ai treats
// them as a browser session.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
