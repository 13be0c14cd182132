package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer uses Bearer token authentication.
	AuthBearer
	// AuthAPIKey uses API key authentication via a header.
	AuthAPIKey
	// AuthCookie sends a session cookie.
	AuthCookie
	// AuthCustom uses a custom authentication function.
	AuthCustom
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Key is the API key value (AuthAPIKey).
	Key string
	// Name is the header name for the API key (AuthAPIKey). Defaults to "x-api-key".
	Name string
	// Cookie is the raw Cookie header value (AuthCookie).
	Cookie string
	// Apply is a custom function to modify the request (AuthCustom).
	Apply func(*http.Request)
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// APIKeyAuth creates an API key auth config with a custom header name.
func APIKeyAuth(key, headerName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, Name: headerName}
}

// CookieAuth creates an auth config that sends a raw Cookie header.
func CookieAuth(cookie string) *AuthConfig {
	return &AuthConfig{Type: AuthCookie, Cookie: cookie}
}

// CustomAuth creates a custom auth config with a request modifier function.
func CustomAuth(fn func(*http.Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// apply applies authentication to an HTTP request.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthAPIKey:
		name := a.Name
		if name == "" {
			name = "x-api-key"
		}
		req.Header.Set(name, a.Key)
	case AuthCookie:
		req.Header.Set("Cookie", a.Cookie)
	case AuthCustom:
		if a.Apply != nil {
			a.Apply(req)
		}
	}
}
