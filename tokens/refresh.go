package tokens

import (
	"context"
	"time"

	"github.com/proxycast/claude-provider/credential"
	"github.com/proxycast/claude-provider/errors"
	"github.com/proxycast/claude-provider/logger"
	"github.com/proxycast/claude-provider/resilience"
)

// MinRefreshTokenLength is the sanity threshold below which a refresh token
// is considered truncated. Guards against a known upstream truncation bug.
const MinRefreshTokenLength = 50

// CheckRefreshToken rejects refresh tokens below the sanity threshold.
func CheckRefreshToken(token string) error {
	if token == "" {
		return errors.InvalidInput("refresh_token", "refresh token is required")
	}
	if len(token) < MinRefreshTokenLength {
		return errors.TruncatedSecret(len(token), MinRefreshTokenLength)
	}
	return nil
}

// RefreshFunc performs one refresh attempt.
type RefreshFunc func(ctx context.Context) (*credential.RefreshResult, error)

// RefreshWithRetry attempts fn up to maxAttempts times with exponential
// backoff (1s, 2s, 4s, ...). Attempts are sequential; the backoff sleep
// suspends without holding any lock. Returns the last error if every
// attempt fails.
func RefreshWithRetry(ctx context.Context, maxAttempts int, fn RefreshFunc) (*credential.RefreshResult, error) {
	log := logger.WithComponent("tokens")

	cfg := resilience.RetryConfig{
		MaxAttempts:    maxAttempts,
		InitialBackoff: time.Second,
		BackoffFactor:  2.0,
		Jitter:         0,
		RetryIf:        resilience.DefaultRetryIf,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			log.WithError(err).Warn("token refresh failed", map[string]any{
				logger.FieldAttempt: attempt,
				"max_attempts":      maxAttempts,
				"backoff":           backoff.String(),
			})
		},
	}

	return resilience.Retry(ctx, cfg, func() (*credential.RefreshResult, error) {
		return fn(ctx)
	})
}
