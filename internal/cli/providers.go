package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/conductor/internal/config"
	"github.com/mrz1836/conductor/internal/domain"
	"github.com/mrz1836/conductor/internal/provider"
)

// providerCheck is the per-provider result of a connectivity probe.
type providerCheck struct {
	Provider string                     `json:"provider"`
	KeyValid bool                       `json:"key_format_valid"`
	Status   *provider.ConnectionStatus `json:"status,omitempty"`
}

// AddProvidersCommand adds the providers command to the root command.
func AddProvidersCommand(parent *cobra.Command, global *GlobalFlags) {
	var check bool

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List available LLM providers",
		Long: `List every registered LLM provider. With --check, run a real connectivity
probe against each provider concurrently using the API key from its
environment variable. Providers without a key are reported, not probed.

Examples:
  conductor providers
  conductor providers --check
  conductor providers --check -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProviders(cmd, check, global, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "probe each provider with a minimal real request")

	parent.AddCommand(cmd)
}

// runProviders executes the providers command.
func runProviders(cmd *cobra.Command, check bool, global *GlobalFlags, w io.Writer) error {
	svc, cfg, err := buildService(cmd.Context())
	if err != nil {
		return err
	}

	types := svc.AvailableProviders()
	if !check {
		if global.Output == OutputJSON {
			names := make([]string, 0, len(types))
			for _, t := range types {
				names = append(names, t.String())
			}
			return printJSON(w, names)
		}
		for _, t := range types {
			_, _ = fmt.Fprintln(w, t)
		}
		return nil
	}

	registry := provider.NewDefaultRegistry()
	results := make([]providerCheck, len(types))

	// Probe all providers concurrently; each result lands in its own slot.
	g, gctx := errgroup.WithContext(cmd.Context())
	for i, ptype := range types {
		g.Go(func() error {
			results[i] = probeProvider(gctx, registry, cfg, ptype)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if global.Output == OutputJSON {
		return printJSON(w, results)
	}

	for _, r := range results {
		icon := "✗"
		detail := ""
		switch {
		case r.Status == nil:
			detail = "no API key in environment"
		case r.Status.Success:
			icon = "✓"
			detail = r.Status.Message
		default:
			detail = r.Status.Error
		}
		_, _ = fmt.Fprintf(w, "%s %-10s %s\n", icon, r.Provider, detail)
	}
	return nil
}

// probeProvider runs one connectivity probe using the environment credential.
// A provider with no key in the environment is not probed; its Status is nil.
func probeProvider(ctx context.Context, registry *provider.Registry, cfg *config.Config, ptype domain.ProviderType) providerCheck {
	result := providerCheck{Provider: ptype.String()}

	envVar := ptype.APIKeyEnvVar()
	switch ptype {
	case domain.ProviderOpenAI:
		if cfg.Providers.OpenAI.APIKeyEnvVar != "" {
			envVar = cfg.Providers.OpenAI.APIKeyEnvVar
		}
	case domain.ProviderAnthropic:
		if cfg.Providers.Anthropic.APIKeyEnvVar != "" {
			envVar = cfg.Providers.Anthropic.APIKeyEnvVar
		}
	}

	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return result
	}

	factory, err := registry.Resolve(ptype)
	if err != nil {
		return result
	}

	p := factory(provider.Options{APIKey: apiKey, Logger: GetLogger()})
	result.KeyValid = p.ValidateAPIKey()
	result.Status = p.TestConnection(ctx)
	return result
}
