package bedrock

import "fmt"

// modelMap maps Anthropic model identifiers to Bedrock model IDs.
var modelMap = map[string]string{
	"claude-opus-4-20250514":     "us.anthropic.claude-opus-4-20250514-v1:0",
	"claude-opus-4-5-20251101":   "us.anthropic.claude-opus-4-5-20251101-v1:0",
	"claude-sonnet-4-20250514":   "us.anthropic.claude-sonnet-4-20250514-v1:0",
	"claude-sonnet-4-5-20250929": "us.anthropic.claude-sonnet-4-5-20250929-v1:0",
	"claude-haiku-3-5-20241022":  "us.anthropic.claude-haiku-3-5-20241022-v1:0",
	"claude-3-5-sonnet-20241022": "us.anthropic.claude-3-5-sonnet-20241022-v2:0",
}

// MapModel converts an Anthropic model identifier to its Bedrock model ID.
// Unknown models fall back to the us.anthropic.<model>-v1:0 convention.
func MapModel(model string) string {
	if mapped, ok := modelMap[model]; ok {
		return mapped
	}
	return fmt.Sprintf("us.anthropic.%s-v1:0", model)
}

// RuntimeBaseURL returns the regional Bedrock runtime base URL.
func RuntimeBaseURL(region string) string {
	return fmt.Sprintf("https://bedrock-runtime.%s.amazonaws.com", region)
}

// InvokeURL returns the streaming invoke URL for a model in a region.
func InvokeURL(region, modelID string) string {
	return fmt.Sprintf("%s/model/%s/invoke-with-response-stream", RuntimeBaseURL(region), modelID)
}

// ControlPlaneURL returns the regional Bedrock control-plane base URL used
// for credential validation.
func ControlPlaneURL(region string) string {
	return fmt.Sprintf("https://bedrock.%s.amazonaws.com", region)
}
