package provider

import "fmt"

// UpstreamError classifies a failed upstream response so callers know
// whether to retry and how long to back off a credential.
type UpstreamError struct {
	Type            string `json:"error_type"`
	Message         string `json:"message"`
	StatusCode      int    `json:"status_code,omitempty"`
	Retryable       bool   `json:"retryable"`
	CooldownSeconds *int64 `json:"cooldown_seconds,omitempty"`
}

// ClassifyUpstream maps an upstream status and body to an UpstreamError.
// Statuses outside the recognized set return nil: the response should be
// passed through untouched.
func ClassifyUpstream(status int, body string) *UpstreamError {
	switch {
	case status == 401:
		return &UpstreamError{
			Type:       "authentication",
			Message:    "Token expired or invalid.",
			StatusCode: status,
			Retryable:  true,
			// Refresh can fix this, so no cooldown.
			CooldownSeconds: cooldown(0),
		}
	case status == 403:
		return &UpstreamError{
			Type:       "authorization",
			Message:    "Insufficient permissions.",
			StatusCode: status,
			Retryable:  false,
		}
	case status == 429:
		return &UpstreamError{
			Type:            "rate_limit",
			Message:         "Too many requests.",
			StatusCode:      status,
			Retryable:       true,
			CooldownSeconds: cooldown(60),
		}
	case status >= 500 && status <= 599:
		return &UpstreamError{
			Type:            "server_error",
			Message:         fmt.Sprintf("Upstream server error: %s", body),
			StatusCode:      status,
			Retryable:       true,
			CooldownSeconds: cooldown(10),
		}
	}
	return nil
}

func cooldown(seconds int64) *int64 {
	return &seconds
}
