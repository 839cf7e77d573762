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

// writingTaskTypes is the closed whitelist of writing operations.
// An unrecognized value is a hard failure, never a silent fallback.
var writingTaskTypes = []string{"generate", "edit", "rewrite", "expand", "condense"} //nolint:gochecknoglobals // Closed whitelist

// Categorical writing fields fall back to a safe default on invalid values
// rather than failing the task.
var (
	writingTones   = []string{"professional", "casual", "formal", "friendly", "persuasive"} //nolint:gochecknoglobals // Closed whitelist
	writingFormats = []string{"article", "email", "report", "blog_post", "summary", "letter"} //nolint:gochecknoglobals // Closed whitelist
	writingLengths = []string{"short", "medium", "long"}                                    //nolint:gochecknoglobals // Closed whitelist
)

// Safe defaults for categorical writing fields.
const (
	defaultTone   = "professional"
	defaultFormat = "article"
	defaultLength = "medium"
)

// WritingAgent generates and transforms prose content.
type WritingAgent struct {
	*BaseAgent
}

// NewWriting constructs a writing agent bound to the given provider.
func NewWriting(p provider.Provider, opts Options) Agent {
	return &WritingAgent{BaseAgent: newBaseAgent(domain.AgentTypeWriting, p, opts)}
}

// SystemPrompt returns the fixed writing instruction text.
func (a *WritingAgent) SystemPrompt() string {
	return `You are a professional writing assistant. Produce clear, well-structured prose
in the requested tone and format. Follow the user's requirements exactly, keep to the
requested length, and return only the written content without meta commentary.`
}

// Capabilities reports type, provider, effective model, and config.
func (a *WritingAgent) Capabilities() map[string]any {
	return a.capabilities(writingTaskTypes, constants.WritingTemperature)
}

// Execute processes one writing task and returns it in a terminal state.
func (a *WritingAgent) Execute(ctx context.Context, task *domain.AgentTask) *domain.AgentTask {
	return a.runTask(task, func() (map[string]any, error) {
		return a.run(ctx, task)
	})
}

// run performs the writing flow: sanitize, validate, prompt, call, echo back.
func (a *WritingAgent) run(ctx context.Context, task *domain.AgentTask) (map[string]any, error) {
	input := task.InputData

	taskType := stringField(input, "task_type")
	if !contains(writingTaskTypes, taskType) {
		return nil, fmt.Errorf("%w: %q (valid: %s)",
			conductorerrors.ErrInvalidTaskType, taskType, strings.Join(writingTaskTypes, ", "))
	}

	topic := a.sanitizer.Clean("topic", stringField(input, "topic"), constants.MaxTopicLength)
	content := a.sanitizer.Clean("content", stringField(input, "content"), constants.MaxContentLength)
	requirements := a.sanitizer.Clean("requirements", stringField(input, "requirements"), constants.MaxRequirementsLength)
	prev := previousOutputExcerpt(input)

	tone := fallbackCategory(input, "tone", writingTones, defaultTone)
	format := fallbackCategory(input, "format", writingFormats, defaultFormat)
	length := fallbackCategory(input, "length", writingLengths, defaultLength)
	wordCount := intField(input, "word_count")

	a.addStep("sanitize_input",
		map[string]any{"task_type": taskType, "tone": tone, "format": format, "length": length},
		map[string]any{"content_length": len(content)},
		"",
	)

	prompt := writingPrompt(taskType, topic, content, requirements, tone, format, length, wordCount, prev)
	a.addStep("build_prompt", map[string]any{"task_type": taskType}, nil, "")

	maxTokens := writingMaxTokens(length, wordCount, a.maxTokens(0))
	resp, err := a.callLLM(ctx, a.SystemPrompt(), prompt, false, maxTokens, a.temperature(constants.WritingTemperature))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"task_type":  taskType,
		"content":    resp.Content,
		"word_count": countWords(resp.Content),
		"tone":       tone,
		"format":     format,
		"model":      resp.Model,
		"provider":   resp.Provider.String(),
	}, nil
}

// writingMaxTokens derives the response budget from the requested output
// length: a caller-specified word count wins, then the length category,
// then the configured default.
func writingMaxTokens(length string, wordCount, configured int) int {
	if wordCount > 0 {
		return int(float64(wordCount) * constants.WritingTokensPerWord)
	}
	switch length {
	case "short":
		return constants.WritingShortMaxTokens
	case "medium":
		return constants.WritingMediumMaxTokens
	case "long":
		return constants.WritingLongMaxTokens
	}
	return configured
}

// writingPrompt builds the per-task-type prompt from sanitized inputs.
func writingPrompt(taskType, topic, content, requirements, tone, format, length string, wordCount int, prev string) string {
	var sb strings.Builder

	switch taskType {
	case "generate":
		sb.WriteString("Write new content according to the specification below.\n")
	case "edit":
		sb.WriteString("Edit the content below for clarity, grammar, and flow while preserving its meaning.\n")
	case "rewrite":
		sb.WriteString("Rewrite the content below in the requested tone and format.\n")
	case "expand":
		sb.WriteString("Expand the content below with additional detail and supporting points.\n")
	case "condense":
		sb.WriteString("Condense the content below to its essential points.\n")
	}

	fmt.Fprintf(&sb, "\nTone: %s\nFormat: %s\n", tone, format)
	if wordCount > 0 {
		fmt.Fprintf(&sb, "Target length: about %d words\n", wordCount)
	} else {
		fmt.Fprintf(&sb, "Target length: %s\n", length)
	}

	if topic != "" {
		sb.WriteString("\nTopic: ")
		sb.WriteString(topic)
		sb.WriteString("\n")
	}
	if requirements != "" {
		sb.WriteString("\nRequirements:\n")
		sb.WriteString(requirements)
		sb.WriteString("\n")
	}
	if content != "" {
		sb.WriteString("\nContent:\n")
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	if prev != "" {
		sb.WriteString("\nOutput from the previous step:\n")
		sb.WriteString(prev)
		sb.WriteString("\n")
	}

	return sb.String()
}

// fallbackCategory returns the input value when it is in the whitelist,
// otherwise the safe default. Invalid categorical values never fail a task.
func fallbackCategory(input map[string]any, key string, whitelist []string, def string) string {
	value := stringField(input, key)
	if value == "" {
		return def
	}
	if contains(whitelist, value) {
		return value
	}
	return def
}

// Compile-time check that WritingAgent implements Agent.
var _ Agent = (*WritingAgent)(nil)
