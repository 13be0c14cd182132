package bedrock

import (
	"context"
	"net/http"
	"time"

	"github.com/proxycast/claude-provider/httpclient"
)

// Validator checks Bedrock credentials against the AWS control plane.
type Validator struct {
	client *httpclient.Client

	// controlPlaneURL overrides the regional control-plane URL when set.
	// Used by tests.
	controlPlaneURL string
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

// Validate performs a signed GET against the foundation-models listing and
// reports whether the credentials were accepted. A non-2xx response means the
// credentials are invalid; transport failures are returned as errors.
func (v *Validator) Validate(ctx context.Context, creds Credentials) (bool, error) {
	base := v.controlPlaneURL
	if base == "" {
		base = ControlPlaneURL(creds.Region)
	}
	url := base + "/foundation-models"

	sig, err := Sign(http.MethodGet, url, creds, nil)
	if err != nil {
		return false, err
	}

	headers := map[string]string{
		"Authorization": sig.Authorization,
		"x-amz-date":    sig.AmzDate,
	}
	if sig.SecurityToken != "" {
		headers["x-amz-security-token"] = sig.SecurityToken
	}

	resp, err := v.client.Do(ctx, httpclient.Request{
		Method:  http.MethodGet,
		Path:    url,
		Headers: headers,
	})
	if err != nil {
		return false, err
	}
	return resp.IsSuccess(), nil
}
