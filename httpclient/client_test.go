package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/proxycast/claude-provider/resilience"
)

func TestClient_Do_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := MustNew(Config{})

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   srv.URL,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got status %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("unexpected body: %s", resp.Body)
	}
}

func TestClient_Do_NonSuccessIsNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	client := MustNew(Config{})

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL})
	if err != nil {
		t.Fatalf("expected no error for 401, got %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestClient_Do_RedirectsSuppressed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/authorize" {
			http.Redirect(w, r, "https://example.com/callback?code=abc", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := MustNew(Config{DisableRedirects: true})

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   srv.URL + "/authorize",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.IsRedirect() {
		t.Fatalf("expected redirect response, got %d", resp.StatusCode)
	}
	if resp.Location() != "https://example.com/callback?code=abc" {
		t.Errorf("unexpected location: %s", resp.Location())
	}
}

func TestClient_Do_RedirectsFollowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, "/end", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("end"))
	}))
	defer srv.Close()

	client := MustNew(Config{})

	resp, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL + "/start"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(resp.Body) != "end" {
		t.Errorf("expected followed redirect body, got %s", resp.Body)
	}
}

func TestClient_Do_AppliesAuthAndHeaders(t *testing.T) {
	var gotAuth, gotVersion, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("anthropic-version")
		gotCookie = r.Header.Get("Cookie")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := MustNew(Config{
		Headers: map[string]string{"anthropic-version": "2023-06-01"},
		Auth:    BearerAuth("tok"),
	})

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotVersion != "2023-06-01" {
		t.Errorf("expected default header, got %q", gotVersion)
	}

	// Request-level auth overrides client-level.
	_, err = client.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   srv.URL,
		Auth:   CookieAuth("sessionKey=s1"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotCookie != "sessionKey=s1" {
		t.Errorf("expected cookie auth, got %q", gotCookie)
	}
}

func TestClient_Do_BaseURLJoin(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := MustNew(Config{BaseURL: srv.URL + "/"})
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/v1/models"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotPath != "/v1/models" {
		t.Errorf("expected joined path /v1/models, got %s", gotPath)
	}
}

func TestClient_Do_Retry(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close() // closed server forces connection errors

	retry := resilience.RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
		RetryIf:        IsRetryable,
	}
	client := MustNew(Config{Retry: &retry})

	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL})
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Timeout: 5 * time.Second, ConnectTimeout: 10 * time.Second}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for connect timeout exceeding total")
	}
}
