package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mrz1836/conductor/internal/agent"
	"github.com/mrz1836/conductor/internal/config"
	"github.com/mrz1836/conductor/internal/orchestrator"
	"github.com/mrz1836/conductor/internal/provider"
)

// buildService loads configuration and constructs the orchestration service
// with the default provider and agent registries. Every command that executes
// or inspects tasks goes through this single construction path.
func buildService(ctx context.Context) (*orchestrator.Service, *config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	svc, err := orchestrator.NewService(
		provider.NewDefaultRegistry(),
		agent.NewDefaultRegistry(),
		cfg,
		orchestrator.Options{Logger: GetLogger()},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build service: %w", err)
	}
	return svc, cfg, nil
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
