package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiryFromAccessToken extracts the exp claim from a JWT-shaped access
// token without verifying its signature. Used as a fallback expiry when the
// token endpoint omits expires_in. Opaque tokens yield (nil, false).
//
// The claim is trusted only for scheduling refreshes, never for
// authorization decisions, so skipping verification is acceptable here.
func ExpiryFromAccessToken(accessToken string) (*time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, false
	}
	t := exp.Time
	return &t, true
}
