package validation

import (
	"strings"
	"testing"

	"github.com/proxycast/claude-provider/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New().Required("api_key", "").Required("base_url", "https://example.com")
	if !v.HasErrors() {
		t.Fatalf("expected errors")
	}
	errs := v.Errors()
	if len(errs) != 1 || errs[0].Field != "api_key" {
		t.Errorf("errors = %v", errs)
	}
}

func TestValidatorURL(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"https://relay.example.com", true},
		{"http://relay.example.com/v1", true},
		{"", true}, // empty skipped, Required handles it
		{"relay.example.com", false},
		{"ftp://relay.example.com", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		v := New().URL("base_url", tt.value)
		if v.HasErrors() == tt.valid {
			t.Errorf("URL(%q) valid = %v, want %v", tt.value, !v.HasErrors(), tt.valid)
		}
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"oauth", "bedrock", "ccr"}
	if New().OneOf("auth_type", "bedrock", allowed).HasErrors() {
		t.Errorf("bedrock should be allowed")
	}
	if !New().OneOf("auth_type", "magic", allowed).HasErrors() {
		t.Errorf("magic should be rejected")
	}
}

func TestValidatorValidateError(t *testing.T) {
	err := New().
		Required("api_key", "").
		MinLength("refresh_token", "short", 50).
		Validate()
	if err == nil {
		t.Fatalf("expected AppError")
	}
	if err.Code != errors.ErrCodeInvalidInput {
		t.Errorf("Code = %s", err.Code)
	}
	fields, ok := err.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("Details fields = %v", err.Details["fields"])
	}
}

func TestStruct(t *testing.T) {
	type createRequest struct {
		Name     string `json:"name" validate:"required"`
		AuthType string `json:"auth_type" validate:"required,oneof=oauth bedrock ccr"`
		BaseURL  string `json:"base_url" validate:"omitempty,url"`
	}

	if err := Struct(createRequest{Name: "prod", AuthType: "oauth"}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}

	err := Struct(createRequest{AuthType: "magic", BaseURL: "not-a-url"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("error is not an AppError: %v", err)
	}
	msg := appErr.Message
	for _, want := range []string{"name: is required", "auth_type: must be one of", "base_url: must be a valid URL"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
