package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/conductor/internal/domain"
)

func TestAnthropic_Complete(t *testing.T) {
	t.Parallel()

	t.Run("successful round trip hoists system message", func(t *testing.T) {
		t.Parallel()
		var gotKey, gotVersion string
		var gotPayload map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("x-api-key")
			gotVersion = r.Header.Get("anthropic-version")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			assert.Equal(t, "/messages", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"content": [{"type": "text", "text": "hi "}, {"type": "text", "text": "there"}],
				"stop_reason": "end_turn",
				"usage": {"input_tokens": 7, "output_tokens": 4}
			}`))
		}))
		defer srv.Close()

		p := NewAnthropic(Options{APIKey: fakeAnthropicKey(), BaseURL: srv.URL, Logger: zerolog.Nop()})
		resp, err := p.Complete(context.Background(), testRequest())

		require.NoError(t, err)
		assert.False(t, resp.Failed())
		assert.Equal(t, "hi there", resp.Content)
		assert.Equal(t, "end_turn", resp.FinishReason)
		assert.Equal(t, 11, resp.Usage.TotalTokens)
		assert.Equal(t, fakeAnthropicKey(), gotKey)
		assert.Equal(t, "2023-06-01", gotVersion)

		// System text becomes the native parameter; only the user message remains.
		assert.Equal(t, "be brief", gotPayload["system"])
		messages, ok := gotPayload["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 1)
		first, ok := messages[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "user", first["role"])
	})

	t.Run("api error yields degraded response", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "Rate limited"}}`))
		}))
		defer srv.Close()

		p := NewAnthropic(Options{APIKey: fakeAnthropicKey(), BaseURL: srv.URL, Logger: zerolog.Nop()})
		resp, err := p.Complete(context.Background(), testRequest())

		require.NoError(t, err)
		assert.True(t, resp.Failed())
		assert.Contains(t, resp.ErrorDetail(), "http 429")
		assert.Contains(t, resp.ErrorDetail(), "Rate limited")
	})

	t.Run("transport failure yields degraded response", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		srv.Close()

		p := NewAnthropic(Options{APIKey: fakeAnthropicKey(), BaseURL: srv.URL, Logger: zerolog.Nop()})
		resp, err := p.Complete(context.Background(), testRequest())

		require.NoError(t, err)
		assert.True(t, resp.Failed())
		assert.Contains(t, resp.ErrorDetail(), "request failed")
	})
}

func TestAnthropic_ValidateAPIKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		{name: "valid anthropic key", key: fakeAnthropicKey(), expected: true},
		{name: "openai key rejected", key: fakeOpenAIKey(), expected: false},
		{name: "too short", key: "sk-ant-short", expected: false},
		{name: "empty", key: "", expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := NewAnthropic(Options{APIKey: tc.key, Logger: zerolog.Nop()})
			assert.Equal(t, tc.expected, p.ValidateAPIKey())
		})
	}
}

func TestHoistSystemMessage(t *testing.T) {
	t.Parallel()

	t.Run("single system message hoisted", func(t *testing.T) {
		t.Parallel()
		messages, system := hoistSystemMessage([]domain.Message{
			{Role: domain.RoleSystem, Content: "instructions"},
			{Role: domain.RoleUser, Content: "question"},
			{Role: domain.RoleAssistant, Content: "answer"},
		})
		assert.Equal(t, "instructions", system)
		assert.Len(t, messages, 2)
	})

	t.Run("no system message", func(t *testing.T) {
		t.Parallel()
		messages, system := hoistSystemMessage([]domain.Message{
			{Role: domain.RoleUser, Content: "question"},
		})
		assert.Empty(t, system)
		assert.Len(t, messages, 1)
	})

	t.Run("extra system messages dropped", func(t *testing.T) {
		t.Parallel()
		messages, system := hoistSystemMessage([]domain.Message{
			{Role: domain.RoleSystem, Content: "first"},
			{Role: domain.RoleSystem, Content: "second"},
			{Role: domain.RoleUser, Content: "question"},
		})
		assert.Equal(t, "first", system)
		assert.Len(t, messages, 1)
	})
}

func TestAnthropic_DefaultModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "claude-sonnet-4-20250514", NewAnthropic(Options{Logger: zerolog.Nop()}).DefaultModel())
}

func TestModelCatalogs(t *testing.T) {
	t.Parallel()

	openai := NewOpenAI(Options{Logger: zerolog.Nop()}).AvailableModels()
	require.NotEmpty(t, openai)
	assert.Equal(t, "gpt-4o", openai[0].ID)

	anthropic := NewAnthropic(Options{Logger: zerolog.Nop()}).AvailableModels()
	require.NotEmpty(t, anthropic)
	assert.Equal(t, "claude-opus-4-20250514", anthropic[0].ID)
}
