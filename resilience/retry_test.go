package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	cfg := DefaultRetryConfig()
	callCount := 0

	result, err := Retry(context.Background(), cfg, func() (string, error) {
		callCount++
		return "ok", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "ok" {
		t.Errorf("expected 'ok', got %s", result)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestRetry_SucceedsAfterRetry(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
	}
	callCount := 0

	result, err := Retry(context.Background(), cfg, func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", errors.New("temporary error")
		}
		return "ok", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "ok" {
		t.Errorf("expected 'ok', got %s", result)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetry_ExceedsMaxAttempts(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
	}
	callCount := 0
	testErr := errors.New("persistent error")

	_, err := Retry(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", testErr
	})

	if !errors.Is(err, testErr) {
		t.Errorf("expected testErr, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    10,
		InitialBackoff: 100 * time.Millisecond,
		BackoffFactor:  2.0,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	callCount := 0
	_, err := Retry(ctx, cfg, func() (string, error) {
		callCount++
		return "", errors.New("error")
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if callCount >= 10 {
		t.Errorf("expected fewer than 10 calls, got %d", callCount)
	}
}

func TestRetry_RetryIfFilter(t *testing.T) {
	retryableErr := errors.New("retryable")
	nonRetryableErr := errors.New("non-retryable")

	cfg := RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
		RetryIf: func(err error) bool {
			return errors.Is(err, retryableErr)
		},
	}

	callCount := 0
	_, _ = Retry(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", retryableErr
	})
	if callCount != 3 {
		t.Errorf("expected 3 calls for retryable error, got %d", callCount)
	}

	callCount = 0
	_, err := Retry(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", nonRetryableErr
	})
	if callCount != 1 {
		t.Errorf("expected 1 call for non-retryable error, got %d", callCount)
	}
	if !errors.Is(err, nonRetryableErr) {
		t.Errorf("expected nonRetryableErr, got %v", err)
	}
}

func TestRetry_OnRetryCallback(t *testing.T) {
	var backoffs []time.Duration

	cfg := RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			backoffs = append(backoffs, backoff)
		},
	}

	_, _ = Retry(context.Background(), cfg, func() (string, error) {
		return "", errors.New("error")
	})

	// OnRetry fires before each retry, not before the first attempt.
	if len(backoffs) != 2 {
		t.Errorf("expected 2 OnRetry calls, got %d", len(backoffs))
	}
}

func TestRetryFunc(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
	}
	callCount := 0

	err := RetryFunc(context.Background(), cfg, func() error {
		callCount++
		if callCount < 2 {
			return errors.New("error")
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if callCount != 2 {
		t.Errorf("expected 2 calls, got %d", callCount)
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: time.Second,
		BackoffFactor:  2.0,
		Jitter:         0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
	}

	for _, tt := range tests {
		got := calculateBackoff(tt.attempt, cfg)
		if got != tt.expected {
			t.Errorf("attempt %d: expected %v, got %v", tt.attempt, tt.expected, got)
		}
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: time.Second,
		MaxBackoff:     3 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         0,
	}
	if got := calculateBackoff(5, cfg); got != 3*time.Second {
		t.Errorf("expected cap at 3s, got %v", got)
	}
}
