// Package errors provides unified error handling for the credential engine.
// It implements structured error types with machine-readable codes, HTTP
// status mapping, and retryable detection.
package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Domain Error Constructors ---

// InvalidURL creates a new AppError for a malformed URL.
func InvalidURL(rawURL string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvalidURL, Message: fmt.Sprintf("Malformed URL: %s", rawURL),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"url": rawURL}, Cause: cause,
	}
}

// TokenExchangeFailed creates a new AppError carrying the upstream status and body.
func TokenExchangeFailed(status int, body string) *AppError {
	return &AppError{
		Code: ErrCodeTokenExchangeFailed, Message: fmt.Sprintf("Token exchange failed: %d - %s", status, body),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"status": status, "body": body},
	}
}

// OrganizationLookupFailed creates a new AppError carrying the organizations listing status and body.
func OrganizationLookupFailed(status int, body string) *AppError {
	return &AppError{
		Code: ErrCodeOrganizationLookupFailed, Message: fmt.Sprintf("Organization lookup failed: %d - %s", status, body),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"status": status, "body": body},
	}
}

// NoEligibleOrganization creates a new AppError for a cookie flow with no usable organization.
func NoEligibleOrganization() *AppError {
	return &AppError{
		Code: ErrCodeNoEligibleOrganization, Message: "No organization with chat capability found.",
		HTTPStatus: http.StatusForbidden, Retryable: false,
	}
}

// NoRedirectReceived creates a new AppError for an authorization response without a redirect.
func NoRedirectReceived() *AppError {
	return &AppError{
		Code: ErrCodeNoRedirectReceived, Message: "Authorization response did not include a redirect.",
		HTTPStatus: http.StatusBadGateway, Retryable: false,
	}
}

// MissingAuthorizationCode creates a new AppError for a redirect URL without a code parameter.
func MissingAuthorizationCode(redirectURL string) *AppError {
	return &AppError{
		Code: ErrCodeMissingAuthorizationCode, Message: "Redirect URL did not carry an authorization code.",
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"redirect_url": redirectURL},
	}
}

// NoHealthyCredential creates a new AppError for an acquisition with no eligible credential.
func NoHealthyCredential() *AppError {
	return &AppError{
		Code: ErrCodeNoHealthyCredential, Message: "No healthy credential available.",
		HTTPStatus: http.StatusServiceUnavailable, Retryable: false,
	}
}

// IncompleteCredential creates a new AppError naming the missing scheme-mandated fields.
func IncompleteCredential(scheme string, missing []string) *AppError {
	return &AppError{
		Code:       ErrCodeIncompleteCredential,
		Message:    fmt.Sprintf("Credential of scheme %s is missing required fields: %s", scheme, strings.Join(missing, ", ")),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"scheme": scheme, "missing_fields": missing},
	}
}

// CredentialNotFound creates a new AppError for an unknown credential identifier.
func CredentialNotFound(id string) *AppError {
	return &AppError{
		Code: ErrCodeCredentialNotFound, Message: fmt.Sprintf("Credential not found: %s", id),
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"credential_id": id},
	}
}

// UnsupportedScheme creates a new AppError for an operation the scheme cannot perform.
func UnsupportedScheme(scheme, operation string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedScheme, Message: fmt.Sprintf("Scheme %s does not support %s.", scheme, operation),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"scheme": scheme, "operation": operation},
	}
}

// TruncatedSecret creates a new AppError for a refresh token below the sanity threshold.
func TruncatedSecret(length, threshold int) *AppError {
	return &AppError{
		Code:       ErrCodeTruncatedSecret,
		Message:    fmt.Sprintf("Refresh token appears truncated (%d characters, expected at least %d).", length, threshold),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"length": length, "threshold": threshold},
	}
}

// UnsupportedModel creates a new AppError for a model outside the supported family.
func UnsupportedModel(model string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedModel, Message: fmt.Sprintf("Unsupported model: %s", model),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"model": model},
	}
}

// Network creates a new AppError for a transport-level failure.
func Network(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeNetwork, Message: fmt.Sprintf("Network failure during %s.", operation),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
