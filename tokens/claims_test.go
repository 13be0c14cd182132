package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestExpiryFromAccessToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"sub": "user",
	})
	signed, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	got, ok := ExpiryFromAccessToken(signed)
	if !ok {
		t.Fatal("expected exp claim to be found")
	}
	if !got.Equal(exp) {
		t.Errorf("expected %v, got %v", exp, got)
	}
}

func TestExpiryFromAccessToken_Opaque(t *testing.T) {
	if _, ok := ExpiryFromAccessToken("sk-ant-oat01-opaque-token"); ok {
		t.Error("expected opaque token to yield no expiry")
	}
}

func TestExpiryFromAccessToken_NoExpClaim(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user"})
	signed, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	if _, ok := ExpiryFromAccessToken(signed); ok {
		t.Error("expected missing exp claim to yield no expiry")
	}
}
