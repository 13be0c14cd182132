package credential

import (
	"testing"
	"time"
)

func TestParseAuthType(t *testing.T) {
	tests := []struct {
		input   string
		want    AuthType
		wantErr bool
	}{
		{"oauth", AuthOAuth, false},
		{"claude_code", AuthClaudeCode, false},
		{"console", AuthConsole, false},
		{"setup_token", AuthSetupToken, false},
		{"bedrock", AuthBedrock, false},
		{"ccr", AuthCCR, false},
		{"", "", true},
		{"basic", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAuthType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAuthType(%q): unexpected error state: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAuthType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAuthType_Families(t *testing.T) {
	oauthFamily := []AuthType{AuthOAuth, AuthClaudeCode, AuthConsole, AuthSetupToken}
	for _, at := range oauthFamily {
		if !at.IsOAuthFamily() {
			t.Errorf("%s: expected OAuth family", at)
		}
	}
	for _, at := range []AuthType{AuthBedrock, AuthCCR} {
		if at.IsOAuthFamily() {
			t.Errorf("%s: expected not OAuth family", at)
		}
	}

	for _, at := range []AuthType{AuthOAuth, AuthClaudeCode, AuthConsole} {
		if !at.CanRefresh() {
			t.Errorf("%s: expected refreshable", at)
		}
	}
	for _, at := range []AuthType{AuthSetupToken, AuthBedrock, AuthCCR} {
		if at.CanRefresh() {
			t.Errorf("%s: expected not refreshable", at)
		}
	}
}

func TestCredential_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		cred Credential
		want int
	}{
		{"oauth with access token", Credential{AuthType: AuthOAuth, AccessToken: "a"}, 0},
		{"oauth with refresh token only", Credential{AuthType: AuthOAuth, RefreshToken: "r"}, 0},
		{"oauth empty", Credential{AuthType: AuthOAuth}, 2},
		{"setup token ok", Credential{AuthType: AuthSetupToken, AccessToken: "a"}, 0},
		{"setup token missing", Credential{AuthType: AuthSetupToken}, 1},
		{"bedrock complete", Credential{AuthType: AuthBedrock, AccessKeyID: "k", SecretAccessKey: "s"}, 0},
		{"bedrock no secret", Credential{AuthType: AuthBedrock, AccessKeyID: "k"}, 1},
		{"bedrock empty", Credential{AuthType: AuthBedrock}, 2},
		{"ccr complete", Credential{AuthType: AuthCCR, APIKey: "k", BaseURL: "https://r.example.com"}, 0},
		{"ccr no base url", Credential{AuthType: AuthCCR, APIKey: "k"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cred.MissingFields(); len(got) != tt.want {
				t.Errorf("expected %d missing fields, got %v", tt.want, got)
			}
		})
	}
}

func TestCredential_EffectiveRegion(t *testing.T) {
	c := Credential{AuthType: AuthBedrock}
	if c.EffectiveRegion() != DefaultRegion {
		t.Errorf("expected default region, got %s", c.EffectiveRegion())
	}
	c.Region = "eu-west-1"
	if c.EffectiveRegion() != "eu-west-1" {
		t.Errorf("expected configured region, got %s", c.EffectiveRegion())
	}
}

func TestCredential_Clone(t *testing.T) {
	expire := time.Now().Add(time.Hour)
	orig := &Credential{AuthType: AuthOAuth, AccessToken: "a", Expire: &expire}

	cp := orig.Clone()
	cp.AccessToken = "changed"
	*cp.Expire = cp.Expire.Add(time.Hour)

	if orig.AccessToken != "a" {
		t.Error("clone mutated the original access token")
	}
	if !orig.Expire.Equal(expire) {
		t.Error("clone shares the expire pointer with the original")
	}
}
