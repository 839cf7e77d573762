package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/conductor/internal/config"
)

// AddStatusCommand adds the status command to the root command.
func AddStatusCommand(parent *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show service configuration and registry status",
		Long: `Display the resolved configuration, the registered agents and providers,
and the task history capacity. Useful for verifying which config files and
environment overrides are in effect.

Examples:
  conductor status
  conductor status -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, global, os.Stdout)
		},
	}

	parent.AddCommand(cmd)
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, global *GlobalFlags, w io.Writer) error {
	svc, cfg, err := buildService(cmd.Context())
	if err != nil {
		return err
	}

	status := svc.Status()
	status["config_global"] = globalConfigPathOrEmpty()
	status["config_project"] = config.ProjectConfigPath()
	if logPath, err := LogFilePath(); err == nil {
		status["log_file"] = logPath
	}
	status["provider_timeout_openai"] = cfg.Providers.OpenAI.Timeout.String()
	status["provider_timeout_anthropic"] = cfg.Providers.Anthropic.Timeout.String()

	if global.Output == OutputJSON {
		return printJSON(w, status)
	}

	_, _ = fmt.Fprintf(w, "Agents:           %v\n", status["agents"])
	_, _ = fmt.Fprintf(w, "Providers:        %v\n", status["providers"])
	_, _ = fmt.Fprintf(w, "History capacity: %v\n", status["history_capacity"])
	_, _ = fmt.Fprintf(w, "Global config:    %v\n", status["config_global"])
	_, _ = fmt.Fprintf(w, "Project config:   %v\n", status["config_project"])
	if logPath, ok := status["log_file"]; ok {
		_, _ = fmt.Fprintf(w, "Log file:         %v\n", logPath)
	}
	return nil
}

// globalConfigPathOrEmpty resolves the global config path, tolerating a
// missing home directory.
func globalConfigPathOrEmpty() string {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return ""
	}
	return path
}
