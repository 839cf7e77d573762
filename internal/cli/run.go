package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/conductor/internal/constants"
	"github.com/mrz1836/conductor/internal/domain"
	"github.com/mrz1836/conductor/internal/orchestrator"
)

// runFlags holds the flags for the run command.
type runFlags struct {
	provider  string
	model     string
	input     string
	inputFile string
	apiKey    string
}

// AddRunCommand adds the run command to the root command.
func AddRunCommand(parent *cobra.Command, global *GlobalFlags) {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <agent-type>",
		Short: "Execute a single task against an agent",
		Long: `Execute one task against the named agent and print the resulting task.

The input payload is a JSON object whose fields are agent-specific; every
agent requires a task_type field. The API key is read from the provider's
environment variable (OPENAI_API_KEY or ANTHROPIC_API_KEY) unless --api-key
is given.

Examples:
  conductor run research --input '{"task_type":"summarize","content":"..."}'
  conductor run coding -p anthropic --input-file task.json
  conductor run writing --input '{"task_type":"generate","topic":"release notes"}' -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0], flags, global, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.provider, "provider", "p", domain.ProviderOpenAI.String(), "LLM provider (openai|anthropic)")
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "model override (empty uses the provider default)")
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "task input payload as a JSON object")
	cmd.Flags().StringVarP(&flags.inputFile, "input-file", "f", "", "path to a JSON file with the task input payload")
	cmd.Flags().StringVar(&flags.apiKey, "api-key", "", "provider API key (prefer the environment variable)")
	cmd.MarkFlagsMutuallyExclusive("input", "input-file")

	parent.AddCommand(cmd)
}

// runRun executes the run command.
func runRun(cmd *cobra.Command, agentType string, flags *runFlags, global *GlobalFlags, w io.Writer) error {
	svc, _, err := buildService(cmd.Context())
	if err != nil {
		return err
	}

	input, err := loadInputPayload(flags.input, flags.inputFile)
	if err != nil {
		return err
	}

	task := svc.ExecuteTask(cmd.Context(), orchestrator.TaskRequest{
		AgentType: domain.AgentType(agentType),
		Provider:  domain.ProviderType(flags.provider),
		APIKey:    flags.apiKey,
		Model:     flags.model,
		InputData: input,
	})

	return printTask(w, task, global.Output)
}

// loadInputPayload parses the task input from the --input flag or file.
func loadInputPayload(inline, path string) (map[string]any, error) {
	var raw []byte
	switch {
	case inline != "":
		raw = []byte(inline)
	case path != "":
		data, err := os.ReadFile(path) //nolint:gosec // User-supplied path is the point
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		raw = data
	default:
		return map[string]any{}, nil
	}

	var input map[string]any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("invalid input payload: %w", err)
	}
	return input, nil
}

// printTask renders one task in the requested output format.
func printTask(w io.Writer, task *domain.AgentTask, output string) error {
	if output == OutputJSON {
		return printJSON(w, task.ToMap(false))
	}

	_, _ = fmt.Fprintf(w, "Task:   %s\n", task.ID)
	_, _ = fmt.Fprintf(w, "Agent:  %s\n", task.Type)
	_, _ = fmt.Fprintf(w, "Status: %s\n", task.Status)
	switch task.Status {
	case constants.TaskStatusCompleted:
		if content, ok := task.Result["content"].(string); ok {
			_, _ = fmt.Fprintf(w, "\n%s\n", content)
		}
	case constants.TaskStatusFailed:
		_, _ = fmt.Fprintf(w, "Error:  %s\n", task.Error)
	}
	return nil
}
