package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/conductor/internal/domain"
	conductorerrors "github.com/mrz1836/conductor/internal/errors"
	"github.com/mrz1836/conductor/internal/provider"
)

// AddModelsCommand adds the models command to the root command.
func AddModelsCommand(parent *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "models [provider]",
		Short: "List available models per provider",
		Long: `List the model catalog of one provider, or of all providers when none is
named. Catalogs are static; no network calls are made.

Examples:
  conductor models
  conductor models anthropic
  conductor models openai -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runModels(name, global, os.Stdout)
		},
	}

	parent.AddCommand(cmd)
}

// runModels executes the models command.
func runModels(name string, global *GlobalFlags, w io.Writer) error {
	registry := provider.NewDefaultRegistry()

	types := registry.Types()
	if name != "" {
		ptype := domain.ProviderType(name)
		if !registry.Has(ptype) {
			return fmt.Errorf("%w: %s", conductorerrors.ErrProviderNotFound, name)
		}
		types = []domain.ProviderType{ptype}
	}

	catalog := make(map[string][]map[string]any, len(types))
	for _, ptype := range types {
		factory, err := registry.Resolve(ptype)
		if err != nil {
			return err
		}
		models := factory(provider.Options{}).AvailableModels()
		infos := make([]map[string]any, 0, len(models))
		for _, m := range models {
			infos = append(infos, m.ToMap())
		}
		catalog[ptype.String()] = infos
	}

	if global.Output == OutputJSON {
		return printJSON(w, catalog)
	}

	for _, ptype := range types {
		_, _ = fmt.Fprintf(w, "%s\n", ptype)
		for _, m := range catalog[ptype.String()] {
			_, _ = fmt.Fprintf(w, "  %-30v %v\n", m["id"], m["description"])
		}
	}
	return nil
}
