package oauth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/proxycast/claude-provider/credential"
)

// GenerateParams creates fresh PKCE material and the authorization URL.
// When setupToken is true the reduced user:inference scope is requested.
func GenerateParams(setupToken bool) (*credential.OAuthParams, error) {
	state, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}
	verifier, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generate code verifier: %w", err)
	}

	sum := sha256.Sum256([]byte(verifier))
	challenge := base64.RawURLEncoding.EncodeToString(sum[:])

	scopes := Scopes
	if setupToken {
		scopes = ScopesSetup
	}

	authURL := fmt.Sprintf(
		"%s?response_type=code&client_id=%s&redirect_uri=%s&scope=%s&state=%s&code_challenge=%s&code_challenge_method=S256",
		AuthorizeURL,
		ClientID,
		url.QueryEscape(RedirectURI),
		url.QueryEscape(scopes),
		state,
		challenge,
	)

	return &credential.OAuthParams{
		AuthURL:       authURL,
		CodeVerifier:  verifier,
		State:         state,
		CodeChallenge: challenge,
	}, nil
}

// randomToken returns 32 bytes of entropy as URL-safe base64 without padding.
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
