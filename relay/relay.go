package relay

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/proxycast/claude-provider/httpclient"
)

// APIVersion is the anthropic-version header value sent on every request.
const APIVersion = "2023-06-01"

// Credentials is an API key bound to a relay base URL.
type Credentials struct {
	APIKey  string
	BaseURL string
}

// Headers returns the request headers for an authenticated relay call.
func Headers(apiKey string) map[string]string {
	return map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": APIVersion,
		"Content-Type":      "application/json",
	}
}

// JoinURL joins a base URL and an endpoint path with exactly one slash
// between them, regardless of trailing or leading slashes on the inputs.
func JoinURL(baseURL, endpoint string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// Validator checks relay credentials against the relay's models listing.
type Validator struct {
	client *httpclient.Client
}

// NewValidator creates a Validator with the given timeouts. Zero values
// fall back to 10s connect / 30s total.
func NewValidator(connectTimeout, timeout time.Duration) *Validator {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Validator{
		client: httpclient.MustNew(httpclient.Config{
			Timeout:        timeout,
			ConnectTimeout: connectTimeout,
		}),
	}
}

// Validate probes GET /v1/models on the relay. Only 401 and 403 mean the
// key was rejected; any other status is treated as valid, since many relays
// do not implement the listing endpoint. Transport failures are returned
// as errors.
func (v *Validator) Validate(ctx context.Context, creds Credentials) (bool, error) {
	resp, err := v.client.Do(ctx, httpclient.Request{
		Method:  http.MethodGet,
		Path:    JoinURL(creds.BaseURL, "v1/models"),
		Headers: Headers(creds.APIKey),
	})
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return false, nil
	}
	return true, nil
}
