package main

import "github.com/proxycast/claude-provider/version"

// authTypeInfo describes one supported auth scheme to the host.
type authTypeInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
}

// modelFamilyInfo describes one model family pattern to the host.
type modelFamilyInfo struct {
	Name        string `json:"name"`
	Pattern     string `json:"pattern"`
	Tier        *int   `json:"tier"`
	Description string `json:"description"`
}

// pluginInfoResponse is the static plugin descriptor.
type pluginInfoResponse struct {
	ID             string            `json:"id"`
	DisplayName    string            `json:"display_name"`
	Version        string            `json:"version"`
	Description    string            `json:"description"`
	TargetProtocol string            `json:"target_protocol"`
	Category       string            `json:"category"`
	AuthTypes      []authTypeInfo    `json:"auth_types"`
	ModelFamilies  []modelFamilyInfo `json:"model_families"`
}

func pluginInfo() pluginInfoResponse {
	return pluginInfoResponse{
		ID:             "claude",
		DisplayName:    "Claude (Anthropic)",
		Version:        version.Version,
		Description:    "Claude credential engine supporting OAuth, Claude Code, Console, Setup Token, Bedrock, and CCR auth",
		TargetProtocol: "anthropic",
		Category:       "oauth",
		AuthTypes: []authTypeInfo{
			{ID: "oauth", DisplayName: "OAuth Login", Description: "Delegated Claude.ai OAuth authorization", Category: "oauth", Icon: "Key"},
			{ID: "claude_code", DisplayName: "Claude Code", Description: "Reuse Claude Code CLI credentials", Category: "oauth", Icon: "Terminal"},
			{ID: "console", DisplayName: "Console OAuth", Description: "Anthropic Console OAuth (enterprise/team)", Category: "oauth", Icon: "Building"},
			{ID: "setup_token", DisplayName: "Setup Token", Description: "Inference-only token with minimal permissions", Category: "token", Icon: "Lock"},
			{ID: "bedrock", DisplayName: "AWS Bedrock", Description: "Claude via AWS Bedrock request signing", Category: "api_key", Icon: "Cloud"},
			{ID: "ccr", DisplayName: "CCR (Relay)", Description: "Third-party Claude relay service", Category: "api_key", Icon: "Server"},
		},
		ModelFamilies: []modelFamilyInfo{
			{Name: "opus", Pattern: "claude-opus-*", Tier: tier(3), Description: "Claude Opus - strongest capability"},
			{Name: "sonnet", Pattern: "claude-*-sonnet*", Tier: tier(2), Description: "Claude Sonnet - balanced choice"},
			{Name: "haiku", Pattern: "claude-*-haiku*", Tier: tier(1), Description: "Claude Haiku - fastest responses"},
			{Name: "all-claude", Pattern: "claude-*", Tier: nil, Description: "All Claude models"},
		},
	}
}

func tier(n int) *int {
	return &n
}
