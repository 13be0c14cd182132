package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/proxycast/claude-provider/errors"
)

// Validator collects validation errors across multiple field checks.
type Validator struct {
	errors []FieldError
}

// FieldError names one failing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{errors: make([]FieldError, 0)}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all collected field errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError naming every failing field, or nil.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": v.errors}
	return appErr
}

// Required checks that a string is non-empty after trimming.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// RequiredUUID checks that a string is a valid non-nil UUID.
func (v *Validator) RequiredUUID(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
		return v
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		v.AddError(field, "must be a valid UUID")
		return v
	}
	if parsed == uuid.Nil {
		v.AddError(field, "must not be empty")
	}
	return v
}

// MinLength checks that a string meets a minimum length. Empty values are
// skipped; combine with Required.
func (v *Validator) MinLength(field, value string, minLen int) *Validator {
	if value != "" && len(value) < minLen {
		v.AddError(field, fmt.Sprintf("must be at least %d characters", minLen))
	}
	return v
}

// URL checks that a non-empty string parses as an absolute http(s) URL.
func (v *Validator) URL(field, value string) *Validator {
	if value == "" {
		return v
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		v.AddError(field, "must be an absolute http(s) URL")
	}
	return v
}

// OneOf checks that a non-empty value is in the allowed set.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom applies an arbitrary condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}
