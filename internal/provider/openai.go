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

// OpenAI adapts the OpenAI-compatible chat completions API.
// Construction is cheap; the HTTP client is built lazily on first use so
// instantiation is safe even with an invalid key.
type OpenAI struct {
	opts       Options
	clientOnce sync.Once
	client     *http.Client
}

// NewOpenAI constructs an OpenAI provider from per-call options.
func NewOpenAI(opts Options) Provider {
	return &OpenAI{opts: opts}
}

// Type returns the provider's backend family tag.
func (p *OpenAI) Type() domain.ProviderType {
	return domain.ProviderOpenAI
}

// DefaultModel returns the configured default model, falling back to the
// hardcoded constant.
func (p *OpenAI) DefaultModel() string {
	if p.opts.Model != "" {
		return p.opts.Model
	}
	return constants.OpenAIDefaultModel
}

// ValidateAPIKey performs a pure format check: OpenAI keys start with "sk-"
// (but not the Anthropic "sk-ant-" prefix) and carry a long suffix.
// No network I/O is performed.
func (p *OpenAI) ValidateAPIKey() bool {
	key := p.opts.APIKey
	if strings.HasPrefix(key, "sk-ant-") {
		return false
	}
	return strings.HasPrefix(key, "sk-") && len(key) >= 20
}

// baseURL returns the endpoint root, honoring the configured override.
func (p *OpenAI) baseURL() string {
	if p.opts.BaseURL != "" {
		return strings.TrimRight(p.opts.BaseURL, "/")
	}
	return constants.OpenAIDefaultBaseURL
}

// httpClient lazily constructs the HTTP client on first use.
func (p *OpenAI) httpClient() *http.Client {
	p.clientOnce.Do(func() {
		p.client = newHTTPClient(resolveTimeout(p.opts))
	})
	return p.client
}

// openaiResponse mirrors the subset of the chat completions response we consume.
type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete performs one chat-completion round trip against the OpenAI API.
// Transport, HTTP-status, and API-level failures return a degraded response;
// the error return is reserved for request-construction failures.
func (p *OpenAI) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.DefaultModel()
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = constants.DefaultMaxTokens
	}

	payload := map[string]any{
		"model":       model,
		"messages":    convertOpenAIMessages(req.Messages),
		"temperature": req.Temperature,
		"max_tokens":  maxTokens,
		"stream":      false,
	}
	if len(req.Stop) > 0 {
		payload["stop"] = append([]string(nil), req.Stop...)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := p.baseURL() + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.opts.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.opts.APIKey)
	}

	p.opts.Logger.Debug().
		Str("provider", p.Type().String()).
		Str("model", model).
		Int("messages", len(req.Messages)).
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

	var apiResp openaiResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := extractOpenAIError(respBody)
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
	if len(apiResp.Choices) == 0 {
		return degraded(p.Type(), model, "no choices in response"), nil
	}

	var raw map[string]any
	_ = json.Unmarshal(respBody, &raw)

	result := &domain.CompletionResponse{
		Content:  apiResp.Choices[0].Message.Content,
		Model:    model,
		Provider: p.Type(),
		Usage: domain.Usage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		},
		FinishReason: apiResp.Choices[0].FinishReason,
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
func (p *OpenAI) TestConnection(ctx context.Context) *ConnectionStatus {
	return probe(ctx, p)
}

// AvailableModels returns the static OpenAI model catalog.
func (p *OpenAI) AvailableModels() []domain.ModelInfo {
	return openAIModels()
}

// convertOpenAIMessages converts domain messages to the wire format.
// OpenAI accepts system messages inline, so roles pass through unchanged.
func convertOpenAIMessages(msgs []domain.Message) []map[string]any {
	result := make([]map[string]any, 0, len(msgs))
	for _, msg := range msgs {
		result = append(result, map[string]any{
			"role":    string(msg.Role),
			"content": msg.Content,
		})
	}
	return result
}

// extractOpenAIError pulls the error message out of an error response body,
// falling back to the raw body when it is not the expected JSON shape.
func extractOpenAIError(body []byte) string {
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

// Compile-time check that OpenAI implements Provider.
var _ Provider = (*OpenAI)(nil)
