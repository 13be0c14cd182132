package provider

import "strings"

// ModelInfo describes one supported model.
type ModelInfo struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	Family         string `json:"family,omitempty"`
	ContextLength  int    `json:"context_length,omitempty"`
	SupportsVision bool   `json:"supports_vision"`
	SupportsTools  bool   `json:"supports_tools"`
}

// Catalog returns the supported model catalog.
func Catalog() []ModelInfo {
	return []ModelInfo{
		{ID: "claude-opus-4-20250514", DisplayName: "Claude Opus 4", Family: "opus", ContextLength: 200000, SupportsVision: true, SupportsTools: true},
		{ID: "claude-opus-4-5-20251101", DisplayName: "Claude Opus 4.5", Family: "opus", ContextLength: 200000, SupportsVision: true, SupportsTools: true},
		{ID: "claude-sonnet-4-20250514", DisplayName: "Claude Sonnet 4", Family: "sonnet", ContextLength: 200000, SupportsVision: true, SupportsTools: true},
		{ID: "claude-sonnet-4-5-20250929", DisplayName: "Claude Sonnet 4.5", Family: "sonnet", ContextLength: 200000, SupportsVision: true, SupportsTools: true},
		{ID: "claude-haiku-3-5-20241022", DisplayName: "Claude Haiku 3.5", Family: "haiku", ContextLength: 200000, SupportsVision: true, SupportsTools: true},
		{ID: "claude-3-5-sonnet-20241022", DisplayName: "Claude 3.5 Sonnet", Family: "sonnet", ContextLength: 200000, SupportsVision: true, SupportsTools: true},
	}
}

// SupportsModel reports whether a model belongs to this provider's family.
// Membership is by prefix, not catalog lookup, so new model releases work
// without a code change.
func SupportsModel(model string) bool {
	return strings.HasPrefix(model, "claude-")
}
