package domain

// Role identifies the author of a conversation message.
type Role string

// Role constants define the valid message authors.
const (
	// RoleSystem carries instruction text establishing the agent's behavior.
	RoleSystem Role = "system"

	// RoleUser carries caller-supplied input.
	RoleUser Role = "user"

	// RoleAssistant carries model-generated output.
	RoleAssistant Role = "assistant"
)

// Message is a single {role, content} entry in a conversation.
// An ordered sequence of messages forms the conversation sent to a provider.
type Message struct {
	// Role identifies the message author (system, user, assistant).
	Role Role `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// Usage holds normalized token-count counters for a completion.
// Provider implementations normalize their native usage format into this shape.
type Usage struct {
	// PromptTokens counts tokens consumed by the request messages.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens counts tokens in the generated response.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the sum of prompt and completion tokens.
	TotalTokens int `json:"total_tokens"`
}

// ToMap returns the usage counters as a plain map for result payloads.
func (u Usage) ToMap() map[string]any {
	return map[string]any{
		"prompt_tokens":     u.PromptTokens,
		"completion_tokens": u.CompletionTokens,
		"total_tokens":      u.TotalTokens,
	}
}

// Add accumulates another usage sample into this one.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// CompletionRequest contains the parameters for a single LLM round trip.
//
// Messages must be ordered. At most one system-role message is expected;
// providers whose backends take a native system parameter (Anthropic) hoist
// it out of the message list.
type CompletionRequest struct {
	// Messages is the ordered conversation to complete.
	Messages []Message `json:"messages"`

	// Model selects the backend model. Empty uses the provider default.
	Model string `json:"model,omitempty"`

	// MaxTokens bounds the response length.
	MaxTokens int `json:"max_tokens"`

	// Temperature controls sampling randomness, in the provider's valid range.
	Temperature float64 `json:"temperature"`

	// Stop lists sequences that terminate generation early.
	Stop []string `json:"stop,omitempty"`
}

// FinishReasonError is the finish reason carried by degraded responses.
// Providers return a degraded response instead of an error for ordinary
// request failures (transport, auth, rate limit, API-level errors).
const FinishReasonError = "error"

// CompletionResponse is the normalized result of a provider round trip.
//
// On failure the provider does not return an error; it returns a degraded
// response with FinishReason set to FinishReasonError and the failure detail
// under Raw["error"], so the agent layer can construct a coherent failed-task
// result with full context.
type CompletionResponse struct {
	// Content is the generated text.
	Content string `json:"content"`

	// Model is the backend model that produced the response.
	Model string `json:"model"`

	// Provider identifies the backend family that served the request.
	Provider ProviderType `json:"provider"`

	// Usage holds normalized token counters.
	Usage Usage `json:"usage"`

	// FinishReason is the backend's stop reason, or FinishReasonError on failure.
	FinishReason string `json:"finish_reason"`

	// Raw carries provider-native response fields and, on failure, the
	// error detail under key "error".
	Raw map[string]any `json:"raw_response,omitempty"`
}

// Failed reports whether this is a degraded response.
func (r *CompletionResponse) Failed() bool {
	return r.FinishReason == FinishReasonError
}

// ErrorDetail returns the failure detail of a degraded response, if any.
func (r *CompletionResponse) ErrorDetail() string {
	if r.Raw == nil {
		return ""
	}
	if detail, ok := r.Raw["error"].(string); ok {
		return detail
	}
	return ""
}
