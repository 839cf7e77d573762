package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/conductor/internal/domain"
)

// AddAgentsCommand adds the agents command to the root command.
func AddAgentsCommand(parent *cobra.Command, global *GlobalFlags) {
	var providerName string

	cmd := &cobra.Command{
		Use:   "agents",
		Short: "List available agents and their capabilities",
		Long: `List every registered agent with its supported task types and tuning.

Capabilities are static metadata; no network calls are made.

Examples:
  conductor agents
  conductor agents --provider anthropic -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAgents(cmd, providerName, global, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&providerName, "provider", "p", domain.ProviderOpenAI.String(), "provider used to resolve the effective model")

	parent.AddCommand(cmd)
}

// runAgents executes the agents command.
func runAgents(cmd *cobra.Command, providerName string, global *GlobalFlags, w io.Writer) error {
	svc, _, err := buildService(cmd.Context())
	if err != nil {
		return err
	}

	ptype := domain.ProviderType(providerName)
	caps := make([]map[string]any, 0, len(svc.AvailableAgents()))
	for _, atype := range svc.AvailableAgents() {
		c, err := svc.AgentCapabilities(atype, ptype)
		if err != nil {
			return err
		}
		caps = append(caps, c)
	}

	if global.Output == OutputJSON {
		return printJSON(w, caps)
	}

	for _, c := range caps {
		_, _ = fmt.Fprintf(w, "%s\n", c["type"])
		if taskTypes, ok := c["task_types"].([]string); ok {
			_, _ = fmt.Fprintf(w, "  task types:  %s\n", strings.Join(taskTypes, ", "))
		}
		_, _ = fmt.Fprintf(w, "  model:       %v\n", c["model"])
		_, _ = fmt.Fprintf(w, "  max tokens:  %v\n", c["max_tokens"])
		_, _ = fmt.Fprintf(w, "  temperature: %v\n", c["temperature"])
	}
	return nil
}
