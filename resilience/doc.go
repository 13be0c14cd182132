// Package resilience provides retry with exponential backoff for operations
// against upstream auth endpoints.
//
// Retries are strictly sequential: each attempt waits out its backoff before
// the next one starts, and the backoff sleep respects context cancellation.
package resilience
