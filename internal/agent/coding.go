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

// codingTaskTypes is the closed whitelist of coding operations.
// An unrecognized value is a hard failure, never a silent fallback.
var codingTaskTypes = []string{"generate", "review", "debug", "explain", "refactor"} //nolint:gochecknoglobals // Closed whitelist

// codingLanguages is the whitelist of recognized language tags. An
// unrecognized language falls back to plain text rather than failing.
var codingLanguages = []string{ //nolint:gochecknoglobals // Closed whitelist
	"go", "python", "javascript", "typescript", "java", "c", "cpp", "csharp",
	"rust", "ruby", "php", "swift", "kotlin", "sql", "bash", "html", "css",
	"yaml", "json", "text",
}

// defaultLanguage is used when the requested language is missing or unknown.
const defaultLanguage = "text"

// CodingAgent generates, reviews, debugs, and explains code.
type CodingAgent struct {
	*BaseAgent
}

// NewCoding constructs a coding agent bound to the given provider.
func NewCoding(p provider.Provider, opts Options) Agent {
	return &CodingAgent{BaseAgent: newBaseAgent(domain.AgentTypeCoding, p, opts)}
}

// SystemPrompt returns the fixed coding instruction text.
func (a *CodingAgent) SystemPrompt() string {
	return `You are an expert software engineer. Write correct, idiomatic code with clear
structure and meaningful names. Put all code inside fenced code blocks tagged with the
language. When reviewing or debugging, list each issue and each recommendation on its
own line. Explain your reasoning briefly outside the code blocks.`
}

// Capabilities reports type, provider, effective model, and config.
func (a *CodingAgent) Capabilities() map[string]any {
	return a.capabilities(codingTaskTypes, constants.CodingTemperature)
}

// Execute processes one coding task and returns it in a terminal state.
func (a *CodingAgent) Execute(ctx context.Context, task *domain.AgentTask) *domain.AgentTask {
	return a.runTask(task, func() (map[string]any, error) {
		return a.run(ctx, task)
	})
}

// run performs the coding flow: sanitize, validate, prompt, call, parse.
func (a *CodingAgent) run(ctx context.Context, task *domain.AgentTask) (map[string]any, error) {
	input := task.InputData

	taskType := stringField(input, "task_type")
	if !contains(codingTaskTypes, taskType) {
		return nil, fmt.Errorf("%w: %q (valid: %s)",
			conductorerrors.ErrInvalidTaskType, taskType, strings.Join(codingTaskTypes, ", "))
	}

	language := fallbackCategory(input, "language", codingLanguages, defaultLanguage)
	code := a.sanitizer.Clean("code", stringField(input, "code"), constants.MaxContentLength)
	requirements := a.sanitizer.Clean("requirements", stringField(input, "requirements"), constants.MaxRequirementsLength)
	instructions := a.sanitizer.Clean("instructions", stringField(input, "instructions"), constants.MaxInstructionsLength)
	errorMessage := a.sanitizer.Clean("error_message", stringField(input, "error_message"), constants.MaxErrorMessageLength)
	prev := previousOutputExcerpt(input)

	a.addStep("sanitize_input",
		map[string]any{"task_type": taskType, "language": language},
		map[string]any{"code_length": len(code)},
		"",
	)

	prompt := codingPrompt(taskType, language, code, requirements, instructions, errorMessage, prev)
	a.addStep("build_prompt", map[string]any{"task_type": taskType}, nil, "")

	resp, err := a.callLLM(ctx, a.SystemPrompt(), prompt, false, a.maxTokens(0), a.temperature(constants.CodingTemperature))
	if err != nil {
		return nil, err
	}

	blocks, explanation := extractCodeBlocks(resp.Content)
	blockMaps := make([]map[string]any, 0, len(blocks))
	for _, b := range blocks {
		blockMaps = append(blockMaps, map[string]any{
			"language": b.Language,
			"code":     b.Code,
		})
	}
	a.addStep("parse_response", nil,
		map[string]any{"code_blocks": len(blocks)}, "")

	result := map[string]any{
		"task_type":   taskType,
		"language":    language,
		"content":     resp.Content,
		"code_blocks": blockMaps,
		"explanation": explanation,
		"model":       resp.Model,
		"provider":    resp.Provider.String(),
	}

	if taskType == "review" {
		issues, recommendations := extractReviewItems(resp.Content)
		result["issues"] = issues
		result["recommendations"] = recommendations
	}

	return result, nil
}

// codingPrompt builds the per-task-type prompt from sanitized inputs.
func codingPrompt(taskType, language, code, requirements, instructions, errorMessage, prev string) string {
	var sb strings.Builder

	switch taskType {
	case "generate":
		fmt.Fprintf(&sb, "Write %s code that satisfies the requirements below.\n", language)
	case "review":
		fmt.Fprintf(&sb, "Review the %s code below. List every issue and every recommendation on its own line.\n", language)
	case "debug":
		fmt.Fprintf(&sb, "Debug the %s code below. Identify the cause of the failure and provide the corrected code.\n", language)
	case "explain":
		fmt.Fprintf(&sb, "Explain what the %s code below does, step by step.\n", language)
	case "refactor":
		fmt.Fprintf(&sb, "Refactor the %s code below for readability and maintainability without changing behavior.\n", language)
	}

	if requirements != "" {
		sb.WriteString("\nRequirements:\n")
		sb.WriteString(requirements)
		sb.WriteString("\n")
	}
	if instructions != "" {
		sb.WriteString("\nInstructions:\n")
		sb.WriteString(instructions)
		sb.WriteString("\n")
	}
	if errorMessage != "" {
		sb.WriteString("\nObserved error:\n")
		sb.WriteString(errorMessage)
		sb.WriteString("\n")
	}
	if code != "" {
		fmt.Fprintf(&sb, "\nCode:\n```%s\n%s\n```\n", language, code)
	}
	if prev != "" {
		sb.WriteString("\nOutput from the previous step:\n")
		sb.WriteString(prev)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Compile-time check that CodingAgent implements Agent.
var _ Agent = (*CodingAgent)(nil)
