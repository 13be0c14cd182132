// Package httpclient provides a configurable HTTP client with built-in
// authentication, bounded connect/total timeouts, optional retry, and
// controllable redirect behavior.
//
// Non-2xx responses are returned as responses, not errors: the OAuth flows
// need the raw upstream status and body, and the cookie-based authorization
// step needs the redirect response itself.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    Timeout:        60 * time.Second,
//	    ConnectTimeout: 30 * time.Second,
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "https://console.anthropic.com/v1/oauth/token",
//	    Body:   payload,
//	})
package httpclient
