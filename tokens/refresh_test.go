package tokens

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/proxycast/claude-provider/credential"
	"github.com/proxycast/claude-provider/errors"
)

func TestCheckRefreshToken(t *testing.T) {
	long := strings.Repeat("x", MinRefreshTokenLength)

	if err := CheckRefreshToken(long); err != nil {
		t.Errorf("expected valid token, got %v", err)
	}

	err := CheckRefreshToken("short")
	if !errors.HasCode(err, errors.ErrCodeTruncatedSecret) {
		t.Errorf("expected TRUNCATED_SECRET, got %v", err)
	}

	err = CheckRefreshToken("")
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for empty token, got %v", err)
	}
}

func TestRefreshWithRetry_FirstAttemptSucceeds(t *testing.T) {
	attempts := 0
	result, err := RefreshWithRetry(context.Background(), 3, func(ctx context.Context) (*credential.RefreshResult, error) {
		attempts++
		return &credential.RefreshResult{AccessToken: "new"}, nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result.AccessToken != "new" {
		t.Errorf("unexpected result: %+v", result)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestRefreshWithRetry_AllAttemptsFail(t *testing.T) {
	// Cancel the context during the first backoff so the test does not
	// actually sleep through the 1s/2s schedule.
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	failure := errors.TokenExchangeFailed(500, "upstream down")
	_, err := RefreshWithRetry(ctx, 3, func(ctx context.Context) (*credential.RefreshResult, error) {
		attempts++
		if attempts == 1 {
			go func() {
				time.Sleep(10 * time.Millisecond)
				cancel()
			}()
		}
		return nil, failure
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("expected cancellation after first attempt, got %d attempts", attempts)
	}
}

func TestRefreshWithRetry_AttemptCount(t *testing.T) {
	// Exercise the full schedule with a deadline comfortably above 1s+2s.
	if testing.Short() {
		t.Skip("skipping backoff schedule test in short mode")
	}

	start := time.Now()
	attempts := 0
	_, err := RefreshWithRetry(context.Background(), 3, func(ctx context.Context) (*credential.RefreshResult, error) {
		attempts++
		return nil, errors.TokenExchangeFailed(500, "down")
	})

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}
	// Delays before attempts 2 and 3 are 1s and 2s.
	if elapsed := time.Since(start); elapsed < 3*time.Second {
		t.Errorf("expected at least 3s of backoff, got %v", elapsed)
	}
	if !errors.HasCode(err, errors.ErrCodeTokenExchangeFailed) {
		t.Errorf("expected last error surfaced, got %v", err)
	}
}
