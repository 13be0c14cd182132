// Package relay handles API-key authentication against third-party
// Claude-compatible relay endpoints. A relay credential pairs an API key
// with a caller-supplied base URL; requests carry the key in x-api-key
// alongside the standard anthropic-version header.
package relay
