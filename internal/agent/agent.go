// Package agent implements task-type specialists over the provider layer.
//
// Each agent turns a structured request into one or more LLM calls plus
// response parsing. All agents share the same shape: input sanitization,
// task-type whitelist validation, prompt construction, LLM invocation, and
// response parsing, with an append-only execution trace for debuggability.
//
// Agents are constructed fresh per task execution and hold no shared mutable
// state across calls.
//
// IMPORTANT: This package may import internal/constants, internal/errors,
// internal/clock, internal/domain, and internal/provider. It MUST NOT import
// internal/orchestrator or internal/cli.
package agent

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mrz1836/conductor/internal/clock"
	"github.com/mrz1836/conductor/internal/domain"
	"github.com/mrz1836/conductor/internal/provider"
)

// Agent defines the uniform interface over a task specialist.
//
// Execute is the sole entry point. It transitions the task through running
// before doing any work and always terminates it in completed or failed;
// an agent never returns a task left in the running state.
type Agent interface {
	// Execute processes the task and returns it in a terminal state.
	Execute(ctx context.Context, task *domain.AgentTask) *domain.AgentTask

	// SystemPrompt returns the fixed instruction text prepended to every
	// LLM call as the system message.
	SystemPrompt() string

	// Type returns the agent's category tag.
	Type() domain.AgentType

	// Capabilities reports type, provider, effective model, and config for
	// introspection/listing endpoints.
	Capabilities() map[string]any
}

// Options configures an agent instance for a single task execution.
type Options struct {
	// Model overrides the provider default model when non-empty.
	Model string

	// MaxTokens bounds response length. Zero uses the built-in default.
	MaxTokens int

	// Temperature overrides the agent's fixed default when non-nil.
	Temperature *float64

	// Clock supplies timestamps. Nil uses the real system clock.
	Clock clock.Clock

	// Logger is the component logger.
	Logger zerolog.Logger
}

// Factory constructs an agent instance bound to a provider.
type Factory func(p provider.Provider, opts Options) Agent
