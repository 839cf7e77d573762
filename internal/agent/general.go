package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrz1836/conductor/internal/constants"
	"github.com/mrz1836/conductor/internal/domain"
	conductorerrors "github.com/mrz1836/conductor/internal/errors"
	"github.com/mrz1836/conductor/internal/provider"
)

// generalTaskTypes is the closed whitelist of general operations.
var generalTaskTypes = []string{"chat", "complete"} //nolint:gochecknoglobals // Closed whitelist

// GeneralAgent handles free-form prompts that fit no specialized category.
type GeneralAgent struct {
	*BaseAgent
}

// NewGeneral constructs a general-purpose agent bound to the given provider.
func NewGeneral(p provider.Provider, opts Options) Agent {
	return &GeneralAgent{BaseAgent: newBaseAgent(domain.AgentTypeGeneral, p, opts)}
}

// SystemPrompt returns the fixed general-assistant instruction text.
func (a *GeneralAgent) SystemPrompt() string {
	return `You are a helpful assistant. Answer the user's request directly and concisely.`
}

// Capabilities reports type, provider, effective model, and config.
func (a *GeneralAgent) Capabilities() map[string]any {
	return a.capabilities(generalTaskTypes, constants.GeneralTemperature)
}

// Execute processes one general task and returns it in a terminal state.
func (a *GeneralAgent) Execute(ctx context.Context, task *domain.AgentTask) *domain.AgentTask {
	return a.runTask(task, func() (map[string]any, error) {
		return a.run(ctx, task)
	})
}

func (a *GeneralAgent) run(ctx context.Context, task *domain.AgentTask) (map[string]any, error) {
	input := task.InputData

	taskType := stringField(input, "task_type")
	if taskType == "" {
		taskType = "chat"
	}
	if !contains(generalTaskTypes, taskType) {
		return nil, fmt.Errorf("%w: %q (valid: %s)",
			conductorerrors.ErrInvalidTaskType, taskType, strings.Join(generalTaskTypes, ", "))
	}

	prompt := a.sanitizer.Clean("prompt", stringField(input, "prompt"), constants.MaxQueryLength)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt", conductorerrors.ErrEmptyValue)
	}

	if prev := previousOutputExcerpt(input); prev != "" {
		prompt += "\n\nOutput from the previous step:\n" + prev
	}

	a.addStep("sanitize_input",
		map[string]any{"task_type": taskType},
		map[string]any{"prompt_length": len(prompt)},
		"",
	)

	resp, err := a.callLLM(ctx, a.SystemPrompt(), prompt, false, a.maxTokens(intField(input, "max_tokens")), a.temperature(constants.GeneralTemperature))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"task_type":  taskType,
		"content":    resp.Content,
		"word_count": countWords(resp.Content),
		"model":      resp.Model,
		"provider":   resp.Provider.String(),
	}, nil
}

// Compile-time check that GeneralAgent implements Agent.
var _ Agent = (*GeneralAgent)(nil)
