package logger

// Standard field names used across the engine.
const (
	// FieldComponent tags log lines with the originating component.
	FieldComponent = "component"
	// FieldCredentialID identifies the credential a log line refers to.
	FieldCredentialID = "credential_id"
	// FieldAuthType identifies the credential scheme.
	FieldAuthType = "auth_type"
	// FieldModel identifies the requested model.
	FieldModel = "model"
	// FieldAttempt is the retry attempt number.
	FieldAttempt = "attempt"
	// FieldStatus is an upstream HTTP status code.
	FieldStatus = "status"
)
