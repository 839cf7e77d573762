package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/mrz1836/conductor/internal/constants"
	"github.com/mrz1836/conductor/internal/domain"
)

// Anthropic adapts the Anthropic messages API.
// Unlike OpenAI, the backend takes system text as a top-level parameter, so
// at most one system-role message is hoisted out of the conversation.
type Anthropic struct {
	opts       Options
	clientOnce sync.Once
	client     *http.Client
}

// NewAnthropic constructs an Anthropic provider from per-call options.
func NewAnthropic(opts Options) Provider {
	return &Anthropic{opts: opts}
}

// Type returns the provider's backend family tag.
func (p *Anthropic) Type() domain.ProviderType {
	return domain.ProviderAnthropic
}

// DefaultModel returns the configured default model, falling back to the
// hardcoded constant.
func (p *Anthropic) DefaultModel() string {
	if p.opts.Model != "" {
		return p.opts.Model
	}
	return constants.AnthropicDefaultModel
}

// ValidateAPIKey performs a pure format check: Anthropic keys carry the
// "sk-ant-" prefix and a long suffix. No network I/O is performed.
func (p *Anthropic) ValidateAPIKey() bool {
	key := p.opts.APIKey
	return strings.HasPrefix(key, "sk-ant-") && len(key) >= 30
}

// baseURL returns the endpoint root, honoring the configured override.
func (p *Anthropic) baseURL() string {
	if p.opts.BaseURL != "" {
		return strings.TrimRight(p.opts.BaseURL, "/")
	}
	return constants.AnthropicDefaultBaseURL
}

// httpClient lazily constructs the HTTP client on first use.
func (p *Anthropic) httpClient() *http.Client {
	p.clientOnce.Do(func() {
		p.client = newHTTPClient(resolveTimeout(p.opts))
	})
	return p.client
}

// anthropicResponse mirrors the subset of the messages response we consume.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete performs one messages-API round trip against Anthropic.
// Transport, HTTP-status, and API-level failures return a degraded response;
// the error return is reserved for request-construction failures.
func (p *Anthropic) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.DefaultModel()
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = constants.DefaultMaxTokens
	}

	messages, system := hoistSystemMessage(req.Messages)
	payload := map[string]any{
		"model":       model,
		"max_tokens":  maxTokens,
		"messages":    messages,
		"temperature": req.Temperature,
	}
	if system != "" {
		payload["system"] = system
	}
	if len(req.Stop) > 0 {
		payload["stop_sequences"] = append([]string(nil), req.Stop...)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := p.baseURL() + "/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("anthropic-version", constants.AnthropicVersion)
	if p.opts.APIKey != "" {
		httpReq.Header.Set("x-api-key", p.opts.APIKey)
	}

	p.opts.Logger.Debug().
		Str("provider", p.Type().String()).
		Str("model", model).
		Int("messages", len(messages)).
		Int("max_tokens", maxTokens).
		Msg("llm request")

	resp, err := p.httpClient().Do(httpReq)
	if err != nil {
		p.opts.Logger.Warn().Err(err).Str("provider", p.Type().String()).Msg("llm transport failure")
		return degraded(p.Type(), model, fmt.Sprintf("request failed: %v", err)), nil
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return degraded(p.Type(), model, fmt.Sprintf("read response: %v", err)), nil
	}

	var apiResp anthropicResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := extractAnthropicError(respBody)
		p.opts.Logger.Warn().
			Int("status", resp.StatusCode).
			Str("provider", p.Type().String()).
			Msg("llm request rejected")
		return degraded(p.Type(), model, fmt.Sprintf("http %d: %s", resp.StatusCode, detail)), nil
	}

	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return degraded(p.Type(), model, fmt.Sprintf("decode response: %v", err)), nil
	}
	if apiResp.Error != nil && apiResp.Error.Message != "" {
		detail := apiResp.Error.Message
		if apiResp.Error.Type != "" {
			detail = apiResp.Error.Type + ": " + detail
		}
		return degraded(p.Type(), model, detail), nil
	}

	var content strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	var raw map[string]any
	_ = json.Unmarshal(respBody, &raw)

	result := &domain.CompletionResponse{
		Content:  content.String(),
		Model:    model,
		Provider: p.Type(),
		Usage: domain.Usage{
			PromptTokens:     apiResp.Usage.InputTokens,
			CompletionTokens: apiResp.Usage.OutputTokens,
			TotalTokens:      apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens,
		},
		FinishReason: apiResp.StopReason,
		Raw:          raw,
	}

	p.opts.Logger.Debug().
		Str("provider", p.Type().String()).
		Str("finish_reason", result.FinishReason).
		Int("total_tokens", result.Usage.TotalTokens).
		Msg("llm response")

	return result, nil
}

// TestConnection fires a minimal real round trip to validate reachability
// and credentials.
func (p *Anthropic) TestConnection(ctx context.Context) *ConnectionStatus {
	return probe(ctx, p)
}

// AvailableModels returns the static Anthropic model catalog.
func (p *Anthropic) AvailableModels() []domain.ModelInfo {
	return anthropicModels()
}

// hoistSystemMessage separates system text from the conversation.
// The first system-role message becomes the native system parameter; any
// additional system messages are dropped (at most one is expected by contract).
func hoistSystemMessage(msgs []domain.Message) ([]map[string]any, string) {
	system := ""
	result := make([]map[string]any, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Role == domain.RoleSystem {
			if system == "" {
				system = msg.Content
			}
			continue
		}
		result = append(result, map[string]any{
			"role":    string(msg.Role),
			"content": msg.Content,
		})
	}
	return result, system
}

// extractAnthropicError pulls the error message out of an error response body,
// falling back to the raw body when it is not the expected JSON shape.
func extractAnthropicError(body []byte) string {
	var errResp struct {
		Error *struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil && errResp.Error.Message != "" {
		if errResp.Error.Type != "" {
			return errResp.Error.Type + ": " + errResp.Error.Message
		}
		return errResp.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// Compile-time check that Anthropic implements Provider.
var _ Provider = (*Anthropic)(nil)
