package domain

// ProviderType represents an LLM backend family (e.g., "openai", "anthropic").
// This determines which provider adapter handles completion requests.
type ProviderType string

// ProviderType constants define the supported LLM backends.
const (
	// ProviderOpenAI speaks the OpenAI-compatible chat completions API.
	ProviderOpenAI ProviderType = "openai"

	// ProviderAnthropic speaks the Anthropic messages API.
	ProviderAnthropic ProviderType = "anthropic"
)

// String returns the string representation of the ProviderType.
// This implements fmt.Stringer for convenient logging and debugging.
func (p ProviderType) String() string {
	return string(p)
}

// IsValid checks if the provider type is a recognized backend.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic:
		return true
	}
	return false
}

// APIKeyEnvVar returns the default environment variable name for the API key.
func (p ProviderType) APIKeyEnvVar() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}
