package agent

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/mrz1836/conductor/internal/clock"
	"github.com/mrz1836/conductor/internal/constants"
	"github.com/mrz1836/conductor/internal/domain"
	conductorerrors "github.com/mrz1836/conductor/internal/errors"
	"github.com/mrz1836/conductor/internal/provider"
)

// genericFailureMessage is what callers see when an agent fails for a reason
// that is not safe to surface. Full detail goes to server logs only.
const genericFailureMessage = "agent execution failed; see server logs for details"

// BaseAgent provides the shared machinery for agent implementations:
// conversation state, the execution trace, LLM invocation, and the
// run-to-terminal-state guard. Embed it in specialized agents.
type BaseAgent struct {
	provider     provider.Provider
	agentType    domain.AgentType
	opts         Options
	clk          clock.Clock
	sanitizer    *Sanitizer
	conversation []domain.Message
	steps        []domain.AgentStep
	usage        domain.Usage
}

// newBaseAgent constructs the shared agent core.
func newBaseAgent(agentType domain.AgentType, p provider.Provider, opts Options) *BaseAgent {
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &BaseAgent{
		provider:  p,
		agentType: agentType,
		opts:      opts,
		clk:       clk,
		sanitizer: NewSanitizer(opts.Logger),
	}
}

// Type returns the agent's category tag.
func (b *BaseAgent) Type() domain.AgentType {
	return b.agentType
}

// now returns the current UTC time from the injected clock.
func (b *BaseAgent) now() time.Time {
	return b.clk.Now().UTC()
}

// ResetConversation clears conversation history and the execution trace.
func (b *BaseAgent) ResetConversation() {
	b.conversation = nil
	b.steps = nil
	b.usage = domain.Usage{}
}

// addStep appends one entry to the execution trace.
func (b *BaseAgent) addStep(action string, input, output map[string]any, reasoning string) {
	b.steps = append(b.steps, domain.AgentStep{
		Index:     len(b.steps),
		Action:    action,
		Input:     input,
		Output:    output,
		Reasoning: reasoning,
		Timestamp: b.now(),
	})
}

// trace returns the execution trace as plain maps for result payloads.
func (b *BaseAgent) trace() []map[string]any {
	out := make([]map[string]any, 0, len(b.steps))
	for _, s := range b.steps {
		out = append(out, s.ToMap())
	}
	return out
}

// maxTokens resolves the effective response budget.
// Priority: explicit request value > agent config > built-in default.
func (b *BaseAgent) maxTokens(requested int) int {
	if requested > 0 {
		return requested
	}
	if b.opts.MaxTokens > 0 {
		return b.opts.MaxTokens
	}
	return constants.DefaultMaxTokens
}

// temperature resolves the effective sampling temperature.
// A config override wins over the agent's fixed default.
func (b *BaseAgent) temperature(agentDefault float64) float64 {
	if b.opts.Temperature != nil {
		return *b.opts.Temperature
	}
	return agentDefault
}

// callLLM wraps one provider round trip: it assembles the message sequence
// (system prompt, optional conversation history, the user message), invokes
// Complete, records the exchange in the conversation and trace, and
// accumulates token usage.
//
// A degraded provider response is converted to an ErrCompletionFailed error
// carrying the failure detail, so agents propagate a single error path.
func (b *BaseAgent) callLLM(ctx context.Context, systemPrompt, userMessage string, includeHistory bool, maxTokens int, temperature float64) (*domain.CompletionResponse, error) {
	messages := make([]domain.Message, 0, len(b.conversation)+2)
	if systemPrompt != "" {
		messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: systemPrompt})
	}
	if includeHistory {
		messages = append(messages, b.conversation...)
	}
	messages = append(messages, domain.Message{Role: domain.RoleUser, Content: userMessage})

	resp, err := b.provider.Complete(ctx, domain.CompletionRequest{
		Messages:    messages,
		Model:       b.opts.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, conductorerrors.Wrap(err, "llm call")
	}
	if resp.Failed() {
		return nil, fmt.Errorf("%w: %s", conductorerrors.ErrCompletionFailed, resp.ErrorDetail())
	}

	b.conversation = append(b.conversation,
		domain.Message{Role: domain.RoleUser, Content: userMessage},
		domain.Message{Role: domain.RoleAssistant, Content: resp.Content},
	)
	b.usage.Add(resp.Usage)
	b.addStep("call_llm",
		map[string]any{"max_tokens": maxTokens, "temperature": temperature},
		map[string]any{"finish_reason": resp.FinishReason, "content_length": len(resp.Content)},
		"",
	)

	return resp, nil
}

// runTask is the guard every agent Execute goes through. It marks the task
// running, invokes the agent-specific run function, and always terminates the
// task in completed or failed, attaching the execution trace and accumulated
// usage to successful results. Panics are converted to failed tasks so no
// failure escapes the execute boundary.
func (b *BaseAgent) runTask(task *domain.AgentTask, run func() (map[string]any, error)) (out *domain.AgentTask) {
	b.ResetConversation()
	task.MarkRunning(b.now())

	defer func() {
		if r := recover(); r != nil {
			b.opts.Logger.Error().
				Str("task_id", task.ID).
				Str("agent", b.agentType.String()).
				Any("panic", r).
				Msg("agent execution panicked")
			task.MarkFailed(genericFailureMessage, b.now())
			out = task
		}
	}()

	result, err := run()
	if err != nil {
		b.opts.Logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Str("agent", b.agentType.String()).
			Msg("task execution failed")
		task.MarkFailed(userSafeError(err), b.now())
		return task
	}

	result["execution_trace"] = b.trace()
	result["usage"] = b.usage.ToMap()
	task.MarkCompleted(result, b.now())
	return task
}

// userSafeError maps an internal error to the message surfaced on the task.
// Validation and completion failures carry caller-actionable context and pass
// through; anything else collapses to the generic message, with full detail
// available only in server logs. The policy is uniform across all agents.
func userSafeError(err error) string {
	switch {
	case stderrors.Is(err, conductorerrors.ErrInvalidTaskType),
		stderrors.Is(err, conductorerrors.ErrCompletionFailed),
		stderrors.Is(err, conductorerrors.ErrEmptyValue):
		return err.Error()
	default:
		return genericFailureMessage
	}
}

// stringField extracts a string value from the input payload, returning ""
// for missing or non-string values.
func stringField(input map[string]any, key string) string {
	if input == nil {
		return ""
	}
	if v, ok := input[key].(string); ok {
		return v
	}
	return ""
}

// intField extracts an integer value from the input payload, tolerating the
// float64 shape JSON decoding produces.
func intField(input map[string]any, key string) int {
	if input == nil {
		return 0
	}
	switch v := input[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}
