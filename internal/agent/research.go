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

// researchTaskTypes is the closed whitelist of research operations.
// An unrecognized value is a hard failure, never a silent fallback.
var researchTaskTypes = []string{"analyze", "summarize", "extract", "compare", "answer"} //nolint:gochecknoglobals // Closed whitelist

// ResearchAgent analyzes, summarizes, and extracts information from text.
type ResearchAgent struct {
	*BaseAgent
}

// NewResearch constructs a research agent bound to the given provider.
func NewResearch(p provider.Provider, opts Options) Agent {
	return &ResearchAgent{BaseAgent: newBaseAgent(domain.AgentTypeResearch, p, opts)}
}

// SystemPrompt returns the fixed research instruction text.
func (a *ResearchAgent) SystemPrompt() string {
	return `You are a research assistant specialized in analyzing and summarizing information.
Work only with the material provided by the user. Structure your answers as follows:
start with a short summary paragraph, then list the key findings as bullet points.
Be precise, cite the relevant passage when extracting facts, and say clearly when
the provided material does not contain the answer.`
}

// Capabilities reports type, provider, effective model, and config.
func (a *ResearchAgent) Capabilities() map[string]any {
	return a.capabilities(researchTaskTypes, constants.ResearchTemperature)
}

// Execute processes one research task and returns it in a terminal state.
func (a *ResearchAgent) Execute(ctx context.Context, task *domain.AgentTask) *domain.AgentTask {
	return a.runTask(task, func() (map[string]any, error) {
		return a.run(ctx, task)
	})
}

// run performs the research flow: sanitize, validate, prompt, call, parse.
func (a *ResearchAgent) run(ctx context.Context, task *domain.AgentTask) (map[string]any, error) {
	input := task.InputData

	taskType := stringField(input, "task_type")
	if !contains(researchTaskTypes, taskType) {
		return nil, fmt.Errorf("%w: %q (valid: %s)",
			conductorerrors.ErrInvalidTaskType, taskType, strings.Join(researchTaskTypes, ", "))
	}

	query := a.sanitizer.Clean("query", stringField(input, "query"), constants.MaxQueryLength)
	content := a.sanitizer.Clean("content", stringField(input, "content"), constants.MaxContentLength)
	contextText := a.sanitizer.Clean("context", stringField(input, "context"), constants.MaxContextLength)
	prev := previousOutputExcerpt(input)

	a.addStep("sanitize_input",
		map[string]any{"task_type": taskType},
		map[string]any{"query_length": len(query), "content_length": len(content)},
		"",
	)

	prompt := researchPrompt(taskType, query, content, contextText, prev)
	a.addStep("build_prompt", map[string]any{"task_type": taskType}, nil, "")

	resp, err := a.callLLM(ctx, a.SystemPrompt(), prompt, false, a.maxTokens(0), a.temperature(constants.ResearchTemperature))
	if err != nil {
		return nil, err
	}

	summary, keyPoints := parseResearchResponse(resp.Content)
	a.addStep("parse_response", nil,
		map[string]any{"key_points": len(keyPoints)}, "")

	return map[string]any{
		"task_type":  taskType,
		"content":    resp.Content,
		"summary":    summary,
		"word_count": countWords(resp.Content),
		"key_points": keyPoints,
		"model":      resp.Model,
		"provider":   resp.Provider.String(),
	}, nil
}

// researchPrompt builds the per-task-type prompt from sanitized inputs.
func researchPrompt(taskType, query, content, contextText, prev string) string {
	var sb strings.Builder

	switch taskType {
	case "analyze":
		sb.WriteString("Analyze the following material and describe its main arguments, assumptions, and conclusions.\n")
	case "summarize":
		sb.WriteString("Summarize the following material. Start with a one-paragraph summary, then list the key points.\n")
	case "extract":
		sb.WriteString("Extract the facts relevant to the request from the following material. List each fact as a bullet point.\n")
	case "compare":
		sb.WriteString("Compare the items described in the following material. Cover similarities, differences, and trade-offs.\n")
	case "answer":
		sb.WriteString("Answer the question using only the following material. If the material does not contain the answer, say so.\n")
	}

	if query != "" {
		sb.WriteString("\nRequest: ")
		sb.WriteString(query)
		sb.WriteString("\n")
	}
	if content != "" {
		sb.WriteString("\nMaterial:\n")
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	if contextText != "" {
		sb.WriteString("\nAdditional context:\n")
		sb.WriteString(contextText)
		sb.WriteString("\n")
	}
	if prev != "" {
		sb.WriteString("\nOutput from the previous step:\n")
		sb.WriteString(prev)
		sb.WriteString("\n")
	}

	return sb.String()
}

// contains reports whether the whitelist holds the value.
func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// Compile-time check that ResearchAgent implements Agent.
var _ Agent = (*ResearchAgent)(nil)
