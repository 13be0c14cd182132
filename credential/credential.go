package credential

import (
	"fmt"
	"time"
)

// AuthType identifies the credential scheme. The set is closed; operations
// switch over it exhaustively.
type AuthType string

const (
	// AuthOAuth is the standard delegated OAuth 2.0 + PKCE scheme.
	AuthOAuth AuthType = "oauth"
	// AuthClaudeCode reuses CLI-derived OAuth tokens.
	AuthClaudeCode AuthType = "claude_code"
	// AuthConsole is the enterprise console OAuth scheme.
	AuthConsole AuthType = "console"
	// AuthSetupToken is a minimal-scope inference-only token without refresh.
	AuthSetupToken AuthType = "setup_token"
	// AuthBedrock signs requests with AWS credentials.
	AuthBedrock AuthType = "bedrock"
	// AuthCCR relays through a third-party service with an API key.
	AuthCCR AuthType = "ccr"
)

// DefaultRegion is the AWS region assumed when none is configured.
const DefaultRegion = "us-east-1"

// ParseAuthType parses a wire-format auth type string.
func ParseAuthType(s string) (AuthType, error) {
	switch AuthType(s) {
	case AuthOAuth, AuthClaudeCode, AuthConsole, AuthSetupToken, AuthBedrock, AuthCCR:
		return AuthType(s), nil
	}
	return "", fmt.Errorf("unknown auth type: %q", s)
}

// String returns the wire form of the auth type.
func (t AuthType) String() string { return string(t) }

// IsOAuthFamily reports whether the scheme carries OAuth-style tokens.
// SetupToken belongs to the family (bearer token, no refresh).
func (t AuthType) IsOAuthFamily() bool {
	switch t {
	case AuthOAuth, AuthClaudeCode, AuthConsole, AuthSetupToken:
		return true
	}
	return false
}

// CanRefresh reports whether the scheme structurally supports token refresh.
func (t AuthType) CanRefresh() bool {
	switch t {
	case AuthOAuth, AuthClaudeCode, AuthConsole:
		return true
	}
	return false
}

// Credential is a stored credential record. Exactly one scheme's required
// fields are populated; the rest stay empty.
type Credential struct {
	Name     string   `json:"name,omitempty" mapstructure:"name"`
	AuthType AuthType `json:"auth_type" mapstructure:"auth_type"`

	// Health and usage bookkeeping, shared by every scheme.
	IsHealthy  bool   `json:"is_healthy"`
	UsageCount uint64 `json:"usage_count"`
	ErrorCount uint64 `json:"error_count"`
	LastError  string `json:"last_error,omitempty"`

	// OAuth-family fields.
	AccessToken  string     `json:"access_token,omitempty" mapstructure:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty" mapstructure:"refresh_token"`
	Email        string     `json:"email,omitempty" mapstructure:"email"`
	Expire       *time.Time `json:"expire,omitempty" mapstructure:"-"`
	LastRefresh  *time.Time `json:"last_refresh,omitempty" mapstructure:"-"`

	// Bedrock fields.
	AccessKeyID     string `json:"access_key_id,omitempty" mapstructure:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key,omitempty" mapstructure:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty" mapstructure:"session_token"`
	Region          string `json:"region,omitempty" mapstructure:"region"`

	// CCR relay fields.
	APIKey  string `json:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL string `json:"base_url,omitempty" mapstructure:"base_url"`
}

// MissingFields returns the scheme-mandated fields that are absent.
// An empty result means the credential is structurally valid.
func (c *Credential) MissingFields() []string {
	var missing []string
	switch c.AuthType {
	case AuthOAuth, AuthClaudeCode, AuthConsole:
		// Either token is enough to start with; refresh can fill the rest.
		if c.AccessToken == "" && c.RefreshToken == "" {
			missing = append(missing, "access_token", "refresh_token")
		}
	case AuthSetupToken:
		if c.AccessToken == "" {
			missing = append(missing, "access_token")
		}
	case AuthBedrock:
		if c.AccessKeyID == "" {
			missing = append(missing, "access_key_id")
		}
		if c.SecretAccessKey == "" {
			missing = append(missing, "secret_access_key")
		}
	case AuthCCR:
		if c.APIKey == "" {
			missing = append(missing, "api_key")
		}
		if c.BaseURL == "" {
			missing = append(missing, "base_url")
		}
	}
	return missing
}

// EffectiveRegion returns the configured region or the default.
func (c *Credential) EffectiveRegion() string {
	if c.Region != "" {
		return c.Region
	}
	return DefaultRegion
}

// Clone returns a deep copy of the credential.
func (c *Credential) Clone() *Credential {
	cp := *c
	if c.Expire != nil {
		t := *c.Expire
		cp.Expire = &t
	}
	if c.LastRefresh != nil {
		t := *c.LastRefresh
		cp.LastRefresh = &t
	}
	return &cp
}
