// Package provider is the credential engine's core: an in-memory credential
// store, the lifecycle manager (create, acquire, release, validate, refresh),
// the model catalog, and upstream error classification.
package provider
