package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/conductor/internal/constants"
	"github.com/mrz1836/conductor/internal/domain"
	conductorerrors "github.com/mrz1836/conductor/internal/errors"
	"github.com/mrz1836/conductor/internal/orchestrator"
)

// chainFlags holds the flags for the chain command.
type chainFlags struct {
	provider string
	apiKey   string
}

// chainFile is the YAML shape of a chain definition file.
type chainFile struct {
	// Provider is the default backend for steps that do not name one.
	Provider string `yaml:"provider,omitempty"`

	// Steps are executed in order.
	Steps []orchestrator.ChainStep `yaml:"steps"`
}

// AddChainCommand adds the chain command to the root command.
func AddChainCommand(parent *cobra.Command, global *GlobalFlags) {
	flags := &chainFlags{}

	cmd := &cobra.Command{
		Use:   "chain <file>",
		Short: "Execute a multi-step chain from a YAML file",
		Long: `Execute a chain of tasks defined in a YAML file. Steps run in order; each
step becomes its own task tagged with the shared chain id. A failed step
aborts the remaining steps. Steps with use_previous_output set receive the
prior step's output in their input under previous_output.

Chain file format:
  provider: openai
  steps:
    - agent_type: research
      input_data:
        task_type: summarize
        content: "..."
    - agent_type: writing
      use_previous_output: true
      input_data:
        task_type: generate
        topic: "summary article"

Examples:
  conductor chain pipeline.yaml
  conductor chain pipeline.yaml --provider anthropic -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(cmd, args[0], flags, global, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.provider, "provider", "p", "", "default LLM provider for steps that do not name one")
	cmd.Flags().StringVar(&flags.apiKey, "api-key", "", "provider API key (prefer the environment variable)")

	parent.AddCommand(cmd)
}

// runChain executes the chain command.
func runChain(cmd *cobra.Command, path string, flags *chainFlags, global *GlobalFlags, w io.Writer) error {
	file, err := loadChainFile(path)
	if err != nil {
		return err
	}

	svc, _, err := buildService(cmd.Context())
	if err != nil {
		return err
	}

	defaultProvider := flags.provider
	if defaultProvider == "" {
		defaultProvider = file.Provider
	}
	if defaultProvider == "" {
		defaultProvider = domain.ProviderOpenAI.String()
	}

	tasks, err := svc.ExecuteChain(cmd.Context(), orchestrator.ChainRequest{
		Steps:    file.Steps,
		Provider: domain.ProviderType(defaultProvider),
		APIKey:   flags.apiKey,
	})
	if err != nil {
		return err
	}

	if global.Output == OutputJSON {
		out := make([]map[string]any, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.ToMap(false))
		}
		return printJSON(w, out)
	}

	for i, task := range tasks {
		_, _ = fmt.Fprintf(w, "Step %d/%d: %s [%s] %s\n", i+1, len(file.Steps), task.Type, task.Status, task.ID)
		if task.Status == constants.TaskStatusFailed {
			_, _ = fmt.Fprintf(w, "  Error: %s\n", task.Error)
		}
	}
	if len(tasks) > 0 {
		last := tasks[len(tasks)-1]
		if last.Status == constants.TaskStatusCompleted {
			if content, ok := last.Result["content"].(string); ok {
				_, _ = fmt.Fprintf(w, "\n%s\n", content)
			}
		}
	}
	return nil
}

// loadChainFile reads and parses a chain definition file.
func loadChainFile(path string) (*chainFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-supplied path is the point
	if err != nil {
		return nil, fmt.Errorf("failed to read chain file: %w", err)
	}

	var file chainFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s", conductorerrors.ErrInvalidChain, err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("%w: chain has no steps", conductorerrors.ErrInvalidChain)
	}
	return &file, nil
}
