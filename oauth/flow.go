package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/proxycast/claude-provider/credential"
	"github.com/proxycast/claude-provider/errors"
	"github.com/proxycast/claude-provider/httpclient"
	"github.com/proxycast/claude-provider/logger"
	"github.com/proxycast/claude-provider/tokens"
)

// tokenResponse is the token endpoint's reply shape.
type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    *int64       `json:"expires_in"`
	TokenType    string       `json:"token_type"`
	Account      *accountInfo `json:"account"`
}

type accountInfo struct {
	EmailAddress string `json:"email_address"`
	UUID         string `json:"uuid"`
}

// organization is a claude.ai organization as listed by the cookie flow.
type organization struct {
	UUID         string   `json:"uuid"`
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
}

// Flow drives the OAuth exchange, refresh, and cookie flows. The zero value
// is not usable; construct with NewFlow.
type Flow struct {
	// tokenClient follows redirects and talks to the token endpoint.
	tokenClient *httpclient.Client
	// cookieClient suppresses redirects so the authorization code can be
	// harvested from the Location header.
	cookieClient *httpclient.Client
	log          *logger.Logger

	// Endpoint overrides for tests; empty means the real endpoints.
	tokenURL     string
	orgsURL      string
	authorizeURL string
}

// FlowConfig tunes the Flow's HTTP timeouts.
type FlowConfig struct {
	// ConnectTimeout bounds connection establishment. Defaults to 30s.
	ConnectTimeout time.Duration
	// Timeout is the total request timeout. The interactive flows need a
	// generous bound; defaults to 60s.
	Timeout time.Duration
}

// ApplyDefaults fills in zero-value settings.
func (c *FlowConfig) ApplyDefaults() {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 30 * time.Second
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
}

// NewFlow creates a Flow. A nil config uses the default timeouts.
func NewFlow(log *logger.Logger, cfg *FlowConfig) *Flow {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	if cfg == nil {
		cfg = &FlowConfig{}
	}
	cfg.ApplyDefaults()
	return &Flow{
		tokenClient: httpclient.MustNew(httpclient.Config{
			Timeout:        cfg.Timeout,
			ConnectTimeout: cfg.ConnectTimeout,
		}),
		cookieClient: httpclient.MustNew(httpclient.Config{
			Timeout:          cfg.Timeout,
			ConnectTimeout:   cfg.ConnectTimeout,
			DisableRedirects: true,
		}),
		log: log.WithComponent("oauth"),
	}
}

// ExchangeCode trades an authorization code for tokens using the PKCE
// verifier and state from the same GenerateParams round.
func (f *Flow) ExchangeCode(ctx context.Context, code, verifier, state string) (*credential.OAuthTokens, error) {
	f.log.Debug("exchanging authorization code")
	return f.tokenRequest(ctx, map[string]string{
		"client_id":     ClientID,
		"grant_type":    "authorization_code",
		"code":          code,
		"redirect_uri":  RedirectURI,
		"code_verifier": verifier,
		"state":         state,
	})
}

// Refresh trades a refresh token for a fresh token set.
func (f *Flow) Refresh(ctx context.Context, refreshToken string) (*credential.OAuthTokens, error) {
	f.log.Debug("refreshing access token")
	return f.tokenRequest(ctx, map[string]string{
		"client_id":     ClientID,
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
	})
}

// AuthorizeWithCookie completes the whole authorization flow with a
// claude.ai sessionKey: it verifies the session owns a chat-capable
// organization, requests the authorization URL with redirects suppressed,
// harvests the code from the Location header, and exchanges it.
func (f *Flow) AuthorizeWithCookie(ctx context.Context, sessionKey string, setupToken bool) (*credential.OAuthTokens, error) {
	f.log.Info("starting cookie authorization")

	orgsURL := f.orgsURL
	if orgsURL == "" {
		orgsURL = OrganizationsURL
	}

	resp, err := f.cookieClient.Do(ctx, httpclient.Request{
		Method:  http.MethodGet,
		Path:    orgsURL,
		Headers: f.cookieHeaders(sessionKey),
	})
	if err != nil {
		return nil, errors.Network("organization lookup", err)
	}
	if !resp.IsSuccess() {
		return nil, errors.OrganizationLookupFailed(resp.StatusCode, string(resp.Body))
	}

	var orgs []organization
	if err := json.Unmarshal(resp.Body, &orgs); err != nil {
		return nil, errors.Internal(fmt.Errorf("decode organizations: %w", err))
	}

	org, ok := findChatOrganization(orgs)
	if !ok {
		return nil, errors.NoEligibleOrganization()
	}
	f.log.Debug("found eligible organization", map[string]any{"organization": org.Name})

	params, err := GenerateParams(setupToken)
	if err != nil {
		return nil, errors.Internal(err)
	}

	authURL := params.AuthURL
	if f.authorizeURL != "" {
		authURL = f.authorizeURL + authURL[len(AuthorizeURL):]
	}

	authResp, err := f.cookieClient.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   authURL,
		Headers: map[string]string{
			"Cookie":     "sessionKey=" + sessionKey,
			"User-Agent": browserUserAgent,
		},
	})
	if err != nil {
		return nil, errors.Network("authorization request", err)
	}

	location := authResp.Location()
	if location == "" {
		return nil, errors.NoRedirectReceived()
	}

	code, err := extractCode(location)
	if err != nil {
		return nil, err
	}
	f.log.Debug("authorization code received")

	return f.ExchangeCode(ctx, code, params.CodeVerifier, params.State)
}

// tokenRequest posts a grant to the token endpoint and maps the response.
func (f *Flow) tokenRequest(ctx context.Context, grant map[string]string) (*credential.OAuthTokens, error) {
	tokenURL := f.tokenURL
	if tokenURL == "" {
		tokenURL = TokenURL
	}

	resp, err := f.tokenClient.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   tokenURL,
		Body:   grant,
	})
	if err != nil {
		return nil, errors.Network("token request", err)
	}
	if !resp.IsSuccess() {
		return nil, errors.TokenExchangeFailed(resp.StatusCode, string(resp.Body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(resp.Body, &tr); err != nil {
		return nil, errors.Internal(fmt.Errorf("decode token response: %w", err))
	}

	result := &credential.OAuthTokens{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn != nil {
		expiresAt := time.Now().Add(time.Duration(*tr.ExpiresIn) * time.Second)
		result.ExpiresAt = &expiresAt
	} else if exp, ok := tokens.ExpiryFromAccessToken(tr.AccessToken); ok {
		// Some grants omit expires_in; fall back to the JWT exp claim so
		// refresh scheduling still has an expiry to work with.
		result.ExpiresAt = exp
	}
	if tr.Account != nil {
		result.Email = tr.Account.EmailAddress
	}

	f.log.Info("token grant succeeded")
	return result, nil
}

// cookieHeaders builds the browser-shaped headers for claude.ai requests.
func (f *Flow) cookieHeaders(sessionKey string) map[string]string {
	return map[string]string{
		"Cookie":     "sessionKey=" + sessionKey,
		"User-Agent": browserUserAgent,
		"Origin":     "https://claude.ai",
		"Referer":    "https://claude.ai/new",
	}
}

// findChatOrganization returns the first organization with chat capability.
func findChatOrganization(orgs []organization) (organization, bool) {
	for _, org := range orgs {
		for _, capability := range org.Capabilities {
			if capability == "chat" {
				return org, true
			}
		}
	}
	return organization{}, false
}

// extractCode pulls the code query parameter out of a redirect URL.
func extractCode(redirectURL string) (string, error) {
	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return "", errors.InvalidURL(redirectURL, err)
	}
	code := parsed.Query().Get("code")
	if code == "" {
		return "", errors.MissingAuthorizationCode(redirectURL)
	}
	return code, nil
}
