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

// Fake keys are assembled at runtime to avoid secret-scanner false positives.
func fakeOpenAIKey() string    { return "sk-" + "TESTONLYxxxxxxxxxxxxxxxxxxxx1234" }
func fakeAnthropicKey() string { return "sk-" + "ant-TESTONLYxxxxxxxxxxxxxxxxxxxx1234" }

func testRequest() domain.CompletionRequest {
	return domain.CompletionRequest{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: "be brief"},
			{Role: domain.RoleUser, Content: "hello"},
		},
		MaxTokens:   100,
		Temperature: 0.5,
	}
}

func TestOpenAI_Complete(t *testing.T) {
	t.Parallel()

	t.Run("successful round trip", func(t *testing.T) {
		t.Parallel()
		var gotAuth string
		var gotPayload map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			assert.Equal(t, "/chat/completions", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"choices": [{"message": {"content": "hi!"}, "finish_reason": "stop"}],
				"usage": {"prompt_tokens": 9, "completion_tokens": 3, "total_tokens": 12}
			}`))
		}))
		defer srv.Close()

		p := NewOpenAI(Options{APIKey: fakeOpenAIKey(), BaseURL: srv.URL, Logger: zerolog.Nop()})
		resp, err := p.Complete(context.Background(), testRequest())

		require.NoError(t, err)
		assert.False(t, resp.Failed())
		assert.Equal(t, "hi!", resp.Content)
		assert.Equal(t, "stop", resp.FinishReason)
		assert.Equal(t, 12, resp.Usage.TotalTokens)
		assert.Equal(t, domain.ProviderOpenAI, resp.Provider)
		assert.Equal(t, "Bearer "+fakeOpenAIKey(), gotAuth)

		// System messages pass through inline.
		messages, ok := gotPayload["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 2)
		first, ok := messages[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "system", first["role"])
	})

	t.Run("auth failure yields degraded response", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "Incorrect API key provided"}}`))
		}))
		defer srv.Close()

		p := NewOpenAI(Options{APIKey: fakeOpenAIKey(), BaseURL: srv.URL, Logger: zerolog.Nop()})
		resp, err := p.Complete(context.Background(), testRequest())

		require.NoError(t, err)
		assert.True(t, resp.Failed())
		assert.Contains(t, resp.ErrorDetail(), "http 401")
		assert.Contains(t, resp.ErrorDetail(), "Incorrect API key provided")
	})

	t.Run("transport failure yields degraded response", func(t *testing.T) {
		t.Parallel()
		// Closed server: connection refused.
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		srv.Close()

		p := NewOpenAI(Options{APIKey: fakeOpenAIKey(), BaseURL: srv.URL, Logger: zerolog.Nop()})
		resp, err := p.Complete(context.Background(), testRequest())

		require.NoError(t, err)
		assert.True(t, resp.Failed())
		assert.Contains(t, resp.ErrorDetail(), "request failed")
	})

	t.Run("empty choices yields degraded response", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		p := NewOpenAI(Options{APIKey: fakeOpenAIKey(), BaseURL: srv.URL, Logger: zerolog.Nop()})
		resp, err := p.Complete(context.Background(), testRequest())

		require.NoError(t, err)
		assert.True(t, resp.Failed())
		assert.Contains(t, resp.ErrorDetail(), "no choices")
	})
}

func TestOpenAI_ValidateAPIKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		{name: "valid openai key", key: fakeOpenAIKey(), expected: true},
		{name: "anthropic key rejected", key: fakeAnthropicKey(), expected: false},
		{name: "too short", key: "sk-short", expected: false},
		{name: "wrong prefix", key: "pk-TESTONLYxxxxxxxxxxxxxxxxxxxx", expected: false},
		{name: "empty", key: "", expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := NewOpenAI(Options{APIKey: tc.key, Logger: zerolog.Nop()})
			assert.Equal(t, tc.expected, p.ValidateAPIKey())
		})
	}
}

func TestOpenAI_DefaultModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gpt-4o-mini", NewOpenAI(Options{Logger: zerolog.Nop()}).DefaultModel())
	assert.Equal(t, "gpt-4o", NewOpenAI(Options{Model: "gpt-4o", Logger: zerolog.Nop()}).DefaultModel())
}

func TestOpenAI_TestConnection(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{
				"choices": [{"message": {"content": "pong"}, "finish_reason": "stop"}],
				"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
			}`))
		}))
		defer srv.Close()

		p := NewOpenAI(Options{APIKey: fakeOpenAIKey(), BaseURL: srv.URL, Logger: zerolog.Nop()})
		status := p.TestConnection(context.Background())

		assert.True(t, status.Success)
		assert.Equal(t, 2, status.Details["total_tokens"])
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		p := NewOpenAI(Options{APIKey: fakeOpenAIKey(), BaseURL: srv.URL, Logger: zerolog.Nop()})
		status := p.TestConnection(context.Background())

		assert.False(t, status.Success)
		assert.Contains(t, status.Error, "http 503")
	})
}
