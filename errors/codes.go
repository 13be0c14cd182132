package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Signing and OAuth flow errors
const (
	// ErrCodeInvalidURL indicates a malformed signing or redirect target URL.
	ErrCodeInvalidURL ErrorCode = "INVALID_URL"
	// ErrCodeTokenExchangeFailed indicates a non-2xx response from the token endpoint.
	ErrCodeTokenExchangeFailed ErrorCode = "TOKEN_EXCHANGE_FAILED"
	// ErrCodeNoEligibleOrganization indicates no organization with chat capability was found.
	ErrCodeNoEligibleOrganization ErrorCode = "NO_ELIGIBLE_ORGANIZATION"
	// ErrCodeOrganizationLookupFailed indicates a non-2xx response from the organizations listing.
	ErrCodeOrganizationLookupFailed ErrorCode = "ORGANIZATION_LOOKUP_FAILED"
	// ErrCodeNoRedirectReceived indicates the authorization response carried no Location header.
	ErrCodeNoRedirectReceived ErrorCode = "NO_REDIRECT_RECEIVED"
	// ErrCodeMissingAuthorizationCode indicates the redirect URL carried no code parameter.
	ErrCodeMissingAuthorizationCode ErrorCode = "MISSING_AUTHORIZATION_CODE"
)

// Credential lifecycle errors
const (
	// ErrCodeNoHealthyCredential indicates no stored credential is eligible for acquisition.
	ErrCodeNoHealthyCredential ErrorCode = "NO_HEALTHY_CREDENTIAL"
	// ErrCodeIncompleteCredential indicates scheme-mandated fields are missing.
	ErrCodeIncompleteCredential ErrorCode = "INCOMPLETE_CREDENTIAL"
	// ErrCodeCredentialNotFound indicates the credential identifier is unknown.
	ErrCodeCredentialNotFound ErrorCode = "CREDENTIAL_NOT_FOUND"
	// ErrCodeUnsupportedScheme indicates the operation is not defined for the credential's scheme.
	ErrCodeUnsupportedScheme ErrorCode = "UNSUPPORTED_SCHEME"
	// ErrCodeTruncatedSecret indicates a refresh token shorter than the sanity threshold.
	ErrCodeTruncatedSecret ErrorCode = "TRUNCATED_SECRET"
	// ErrCodeUnsupportedModel indicates the model identifier is outside the supported family.
	ErrCodeUnsupportedModel ErrorCode = "UNSUPPORTED_MODEL"
)

// Transport and input errors
const (
	// ErrCodeNetwork indicates a transport-level failure, passed through verbatim.
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTokenExchangeFailed:      true,
	ErrCodeOrganizationLookupFailed: true,
	ErrCodeNetwork:                  true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
