package credential

import "time"

// OAuthParams is ephemeral PKCE material for one authorization round-trip.
type OAuthParams struct {
	// AuthURL is the full authorization URL the user (or cookie flow) visits.
	AuthURL string `json:"auth_url"`
	// CodeVerifier is the PKCE verifier, URL-safe base64 without padding.
	CodeVerifier string `json:"code_verifier"`
	// State is the CSRF state parameter.
	State string `json:"state"`
	// CodeChallenge is the S256 challenge derived from the verifier.
	CodeChallenge string `json:"code_challenge"`
}

// OAuthTokens is the result of a code exchange or refresh.
type OAuthTokens struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Email        string     `json:"email,omitempty"`
}

// RefreshResult is written back into a credential after a successful refresh.
type RefreshResult struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Email        string     `json:"email,omitempty"`
}

// Acquired is the read-only snapshot handed to a caller after acquisition,
// with scheme-specific headers and base URL materialized.
type Acquired struct {
	ID       string            `json:"id"`
	Name     string            `json:"name,omitempty"`
	AuthType string            `json:"auth_type"`
	BaseURL  string            `json:"base_url,omitempty"`
	Headers  map[string]string `json:"headers"`
	Metadata map[string]any    `json:"metadata,omitempty"`
}

// ValidationResult reports whether a credential is structurally usable.
type ValidationResult struct {
	Valid   bool           `json:"valid"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ReleaseOutcome is the caller's report of how an acquired credential fared.
type ReleaseOutcome struct {
	// Error is nil on success.
	Error *ReleaseError `json:"error,omitempty"`
}

// ReleaseError describes a failed use of a credential.
type ReleaseError struct {
	Message string `json:"message"`
	// MarkUnhealthy removes the credential from the acquisition pool.
	MarkUnhealthy bool `json:"mark_unhealthy"`
}
