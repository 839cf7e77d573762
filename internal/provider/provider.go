// Package provider implements adapters over heterogeneous LLM backends.
//
// Each provider exposes a uniform surface: a chat-completion round trip, a
// static model catalog, a real connectivity test, and a pure-format API key
// check. Providers are cheap to construct (the HTTP client is built lazily on
// first use) and are created fresh per task execution, so they hold no shared
// mutable state across calls.
//
// IMPORTANT: This package may import internal/constants, internal/errors,
// internal/config, internal/logging, and internal/domain. It MUST NOT import
// internal/agent or internal/orchestrator.
package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/conductor/internal/constants"
	"github.com/mrz1836/conductor/internal/domain"
)

// Provider defines the uniform interface over an LLM backend.
//
// Complete never returns an error for ordinary request failures (transport
// faults, auth failures, rate limits, API-level errors); those surface as a
// degraded domain.CompletionResponse with FinishReason "error" and the detail
// under Raw["error"]. The error return is reserved for request-construction
// failures.
type Provider interface {
	// Complete performs one chat-completion round trip.
	// The context controls timeout and cancellation of the network call.
	Complete(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResponse, error)

	// AvailableModels returns the static per-provider model catalog, ordered.
	AvailableModels() []domain.ModelInfo

	// TestConnection fires a minimal real round trip to validate
	// reachability and credentials.
	TestConnection(ctx context.Context) *ConnectionStatus

	// ValidateAPIKey performs a pure format check (length + known prefix).
	// It never performs network I/O; use it as a pre-filter before Complete.
	ValidateAPIKey() bool

	// DefaultModel returns the model used when a request does not name one.
	DefaultModel() string

	// Type returns the provider's backend family tag.
	Type() domain.ProviderType
}

// ConnectionStatus is the result of a connectivity probe.
type ConnectionStatus struct {
	// Success indicates the probe round trip succeeded.
	Success bool `json:"success"`

	// Message is a human-readable summary of the probe outcome.
	Message string `json:"message"`

	// Details carries probe metadata (model, token usage) on success.
	Details map[string]any `json:"details,omitempty"`

	// Error carries the failure detail when Success is false.
	Error string `json:"error,omitempty"`
}

// Options configures a provider instance for a single task execution.
type Options struct {
	// APIKey is the caller-supplied credential. Never logged.
	APIKey string

	// Model overrides the provider default model when non-empty.
	Model string

	// BaseURL overrides the backend endpoint root when non-empty.
	BaseURL string

	// Timeout bounds each HTTP round trip. Zero uses the default.
	Timeout time.Duration

	// Logger is the component logger. Credentials are filtered upstream;
	// providers still never log key material.
	Logger zerolog.Logger
}

// Factory constructs a provider instance from per-call options.
// Construction is cheap and never fails: credential problems surface later as
// degraded responses from Complete, or via ValidateAPIKey.
type Factory func(opts Options) Provider

// resolveTimeout returns the effective HTTP timeout for the given options.
func resolveTimeout(opts Options) time.Duration {
	if opts.Timeout > 0 {
		return opts.Timeout
	}
	return constants.DefaultProviderTimeout
}

// degraded builds the degraded response carrying a failure detail.
// The agent layer inspects FinishReason/Raw rather than catching errors.
func degraded(ptype domain.ProviderType, model, detail string) *domain.CompletionResponse {
	return &domain.CompletionResponse{
		Model:        model,
		Provider:     ptype,
		FinishReason: domain.FinishReasonError,
		Raw:          map[string]any{"error": detail},
	}
}

// newHTTPClient builds the lazily-constructed client for a provider.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// probe runs the shared connection-test flow: one minimal completion and a
// translation of the outcome into a ConnectionStatus.
func probe(ctx context.Context, p Provider) *ConnectionStatus {
	resp, err := p.Complete(ctx, domain.CompletionRequest{
		Messages:    []domain.Message{{Role: domain.RoleUser, Content: "ping"}},
		MaxTokens:   constants.ConnectionTestMaxTokens,
		Temperature: 0,
	})
	if err != nil {
		return &ConnectionStatus{
			Success: false,
			Message: "connection test failed",
			Error:   err.Error(),
		}
	}
	if resp.Failed() {
		return &ConnectionStatus{
			Success: false,
			Message: "connection test failed",
			Error:   resp.ErrorDetail(),
		}
	}
	return &ConnectionStatus{
		Success: true,
		Message: "connection ok",
		Details: map[string]any{
			"model":        resp.Model,
			"total_tokens": resp.Usage.TotalTokens,
		},
	}
}
