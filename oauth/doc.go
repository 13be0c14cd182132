// Package oauth implements the Claude OAuth 2.0 + PKCE authorization flows:
// parameter generation, authorization-code exchange, token refresh, and the
// cookie-driven flow that completes authorization with a claude.ai session
// key instead of a browser round-trip.
package oauth
