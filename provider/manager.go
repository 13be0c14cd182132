package provider

import (
	"context"
	"strings"
	"time"

	"github.com/proxycast/claude-provider/bedrock"
	"github.com/proxycast/claude-provider/credential"
	"github.com/proxycast/claude-provider/errors"
	"github.com/proxycast/claude-provider/logger"
	"github.com/proxycast/claude-provider/observability"
	"github.com/proxycast/claude-provider/relay"
	"github.com/proxycast/claude-provider/tokens"
	"github.com/proxycast/claude-provider/validation"
)

const (
	// apiBaseURL is the upstream API base for OAuth-family credentials.
	apiBaseURL = "https://api.anthropic.com"
	// anthropicVersion is the fixed API version header value.
	anthropicVersion = "2023-06-01"
)

// TokenRefresher trades a refresh token for a fresh token set.
// *oauth.Flow satisfies it.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*credential.OAuthTokens, error)
}

// ManagerConfig tunes the lifecycle manager.
type ManagerConfig struct {
	// RefreshMaxAttempts caps refresh retries.
	RefreshMaxAttempts int
	// DefaultRegion is used for bedrock credentials without a region.
	DefaultRegion string
	// HTTPConnectTimeout and HTTPTimeout bound the live validation probes.
	// Zero values use the validators' defaults.
	HTTPConnectTimeout time.Duration
	HTTPTimeout        time.Duration
}

// ApplyDefaults fills in zero-valued settings.
func (c *ManagerConfig) ApplyDefaults() {
	if c.RefreshMaxAttempts == 0 {
		c.RefreshMaxAttempts = 3
	}
	if c.DefaultRegion == "" {
		c.DefaultRegion = credential.DefaultRegion
	}
}

// Manager orchestrates the credential lifecycle: create, acquire, release,
// validate, refresh. Scheme-specific behavior dispatches over the closed
// AuthType set.
type Manager struct {
	store   *Store
	flow    TokenRefresher
	log     *logger.Logger
	metrics *observability.Metrics
	config  ManagerConfig

	// Network probes for live validation, swappable in tests.
	bedrockCheck func(ctx context.Context, creds bedrock.Credentials) (bool, error)
	relayCheck   func(ctx context.Context, creds relay.Credentials) (bool, error)
}

// NewManager creates a Manager around a store and a token refresher.
func NewManager(store *Store, flow TokenRefresher, log *logger.Logger, cfg ManagerConfig) *Manager {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	// With no meter provider installed these are no-ops.
	metrics, err := observability.NewDefaultMetrics()
	if err != nil {
		metrics = nil
	}
	return &Manager{
		store:        store,
		flow:         flow,
		log:          log.WithComponent("provider"),
		metrics:      metrics,
		config:       cfg,
		bedrockCheck: bedrock.NewValidator(cfg.HTTPConnectTimeout, cfg.HTTPTimeout).Validate,
		relayCheck:   relay.NewValidator(cfg.HTTPConnectTimeout, cfg.HTTPTimeout).Validate,
	}
}

// Create validates and stores a new credential, returning its identifier.
// The scheme is fixed here and never changes.
func (m *Manager) Create(authType credential.AuthType, cred *credential.Credential) (string, error) {
	if _, err := credential.ParseAuthType(authType.String()); err != nil {
		return "", errors.InvalidInput("auth_type", err.Error())
	}

	stored := cred.Clone()
	stored.AuthType = authType

	if missing := stored.MissingFields(); len(missing) > 0 {
		return "", errors.IncompleteCredential(authType.String(), missing)
	}
	if authType == credential.AuthCCR {
		if err := validation.New().URL("base_url", stored.BaseURL).Validate(); err != nil {
			return "", err
		}
	}

	stored.IsHealthy = true
	stored.UsageCount = 0
	stored.ErrorCount = 0
	stored.LastError = ""

	id := m.store.Insert(stored)
	m.log.Info("credential created", map[string]any{
		logger.FieldCredentialID: id,
		logger.FieldAuthType:     authType.String(),
	})
	return id, nil
}

// Acquire selects the first healthy credential and materializes the
// scheme-specific headers and base URL for one upstream request.
func (m *Manager) Acquire(ctx context.Context, model string) (*credential.Acquired, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAcquire)
	defer span.End()

	acquired, err := m.acquire(model)
	if m.metrics != nil {
		status := "ok"
		if err != nil {
			status = "failed"
		}
		authType := ""
		if acquired != nil {
			authType = acquired.AuthType
		}
		m.metrics.RecordAcquire(ctx, authType, status)
	}
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return acquired, err
}

func (m *Manager) acquire(model string) (*credential.Acquired, error) {
	if !SupportsModel(model) {
		return nil, errors.UnsupportedModel(model)
	}

	id, cred := m.store.FirstHealthy()
	if cred == nil {
		return nil, errors.NoHealthyCredential()
	}

	var baseURL string
	headers := map[string]string{"Content-Type": "application/json"}

	switch cred.AuthType {
	case credential.AuthOAuth, credential.AuthClaudeCode, credential.AuthConsole, credential.AuthSetupToken:
		if cred.AccessToken == "" {
			return nil, errors.IncompleteCredential(cred.AuthType.String(), []string{"access_token"})
		}
		headers["Authorization"] = "Bearer " + cred.AccessToken
		headers["anthropic-version"] = anthropicVersion
		baseURL = apiBaseURL

	case credential.AuthBedrock:
		// Signing depends on the exact request, so it is deferred to send
		// time; only the regional base URL is materialized here.
		region := cred.Region
		if region == "" {
			region = m.config.DefaultRegion
		}
		baseURL = bedrock.RuntimeBaseURL(region)

	case credential.AuthCCR:
		if cred.APIKey == "" || cred.BaseURL == "" {
			return nil, errors.IncompleteCredential(cred.AuthType.String(), cred.MissingFields())
		}
		for k, v := range relay.Headers(cred.APIKey) {
			headers[k] = v
		}
		baseURL = strings.TrimRight(cred.BaseURL, "/")

	default:
		return nil, errors.UnsupportedScheme(cred.AuthType.String(), "acquire")
	}

	m.log.Debug("credential acquired", map[string]any{
		logger.FieldCredentialID: id,
		logger.FieldAuthType:     cred.AuthType.String(),
		logger.FieldModel:        model,
	})

	return &credential.Acquired{
		ID:       id,
		Name:     cred.Name,
		AuthType: cred.AuthType.String(),
		BaseURL:  baseURL,
		Headers:  headers,
		Metadata: map[string]any{},
	}, nil
}

// Release records the outcome of one use of an acquired credential.
func (m *Manager) Release(id string, outcome credential.ReleaseOutcome) error {
	ok := m.store.Update(id, func(cred *credential.Credential) {
		cred.UsageCount++
		if outcome.Error != nil {
			cred.ErrorCount++
			cred.LastError = outcome.Error.Message
			if outcome.Error.MarkUnhealthy {
				cred.IsHealthy = false
			}
		} else {
			cred.IsHealthy = true
			cred.LastError = ""
		}
	})
	if !ok {
		return errors.CredentialNotFound(id)
	}

	if outcome.Error != nil && outcome.Error.MarkUnhealthy {
		m.log.Warn("credential marked unhealthy", map[string]any{
			logger.FieldCredentialID: id,
			"last_error":             outcome.Error.Message,
		})
	}
	if m.metrics != nil {
		m.metrics.RecordRelease(context.Background())
	}
	return nil
}

// Validate reports whether a credential is structurally usable. An unknown
// identifier yields an invalid result, not an error.
func (m *Manager) Validate(id string) *credential.ValidationResult {
	cred := m.store.Get(id)
	if cred == nil {
		return &credential.ValidationResult{
			Valid:   false,
			Message: "Credential not found.",
		}
	}

	missing := cred.MissingFields()
	result := &credential.ValidationResult{
		Valid: len(missing) == 0 && cred.IsHealthy,
		Details: map[string]any{
			"auth_type":  cred.AuthType.String(),
			"is_healthy": cred.IsHealthy,
		},
	}
	if len(missing) > 0 {
		result.Message = "Credential configuration is incomplete."
		result.Details["missing_fields"] = missing
	} else {
		result.Message = "Credential is valid."
	}

	if m.metrics != nil {
		status := "ok"
		if !result.Valid {
			status = "failed"
		}
		m.metrics.RecordValidate(context.Background(), cred.AuthType.String(), status)
	}
	return result
}

// Refresh exchanges the credential's refresh token for fresh tokens and
// writes the result back. Only OAuth-family schemes with a refresh token
// support this. The network call runs with no lock held; the write-back
// reacquires the lock briefly, so the last concurrent writer wins.
func (m *Manager) Refresh(ctx context.Context, id string) (*credential.RefreshResult, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanRefresh)
	defer span.End()

	start := time.Now()
	cred := m.store.Get(id)
	if cred == nil {
		return nil, errors.CredentialNotFound(id)
	}

	result, err := m.refresh(ctx, id, cred)
	if m.metrics != nil {
		status := "ok"
		if err != nil {
			status = "failed"
		}
		m.metrics.RecordRefresh(ctx, cred.AuthType.String(), status, time.Since(start))
	}
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return result, err
}

func (m *Manager) refresh(ctx context.Context, id string, cred *credential.Credential) (*credential.RefreshResult, error) {
	if !cred.AuthType.CanRefresh() {
		return nil, errors.UnsupportedScheme(cred.AuthType.String(), "refresh")
	}
	if err := tokens.CheckRefreshToken(cred.RefreshToken); err != nil {
		return nil, err
	}

	result, err := tokens.RefreshWithRetry(ctx, m.config.RefreshMaxAttempts, func(ctx context.Context) (*credential.RefreshResult, error) {
		toks, err := m.flow.Refresh(ctx, cred.RefreshToken)
		if err != nil {
			return nil, err
		}
		return &credential.RefreshResult{
			AccessToken:  toks.AccessToken,
			RefreshToken: toks.RefreshToken,
			ExpiresAt:    toks.ExpiresAt,
			Email:        toks.Email,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m.store.Update(id, func(stored *credential.Credential) {
		stored.AccessToken = result.AccessToken
		if result.RefreshToken != "" {
			stored.RefreshToken = result.RefreshToken
		}
		stored.Expire = result.ExpiresAt
		stored.LastRefresh = &now
		stored.IsHealthy = true
		stored.LastError = ""
		if result.Email != "" {
			stored.Email = result.Email
		}
	})

	m.log.Info("token refreshed", map[string]any{
		logger.FieldCredentialID: id,
		logger.FieldAuthType:     cred.AuthType.String(),
	})
	return result, nil
}

// Store exposes the underlying store for read-side consumers.
func (m *Manager) Store() *Store {
	return m.store
}
