package provider

import (
	"context"

	"github.com/proxycast/claude-provider/bedrock"
	"github.com/proxycast/claude-provider/credential"
	"github.com/proxycast/claude-provider/observability"
	"github.com/proxycast/claude-provider/relay"
	"github.com/proxycast/claude-provider/tokens"
)

// ValidateLive checks a credential against its upstream: a signed
// foundation-models probe for bedrock, a models-listing probe for ccr, and
// an expiry check for the OAuth family. Structural problems are reported
// without touching the network. Transport failures are returned as errors
// so callers can distinguish "rejected" from "unreachable".
func (m *Manager) ValidateLive(ctx context.Context, id string) (*credential.ValidationResult, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanValidate)
	defer span.End()

	result := m.Validate(id)
	if !result.Valid {
		return result, nil
	}
	cred := m.store.Get(id)

	var (
		accepted bool
		err      error
	)
	switch cred.AuthType {
	case credential.AuthBedrock:
		region := cred.Region
		if region == "" {
			region = m.config.DefaultRegion
		}
		accepted, err = m.bedrockCheck(ctx, bedrock.Credentials{
			AccessKeyID:     cred.AccessKeyID,
			SecretAccessKey: cred.SecretAccessKey,
			SessionToken:    cred.SessionToken,
			Region:          region,
		})

	case credential.AuthCCR:
		accepted, err = m.relayCheck(ctx, relay.Credentials{
			APIKey:  cred.APIKey,
			BaseURL: cred.BaseURL,
		})

	default:
		// OAuth family carries its own expiry; an expired token with no
		// refresh token cannot recover.
		if tokens.IsExpired(cred.Expire) && cred.RefreshToken == "" {
			return &credential.ValidationResult{
				Valid:   false,
				Message: "Access token is expired.",
				Details: result.Details,
			}, nil
		}
		return result, nil
	}

	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	if !accepted {
		return &credential.ValidationResult{
			Valid:   false,
			Message: "Credential was rejected by the upstream service.",
			Details: result.Details,
		}, nil
	}
	return result, nil
}
