package config

import (
	"github.com/mrz1836/conductor/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - provider timeouts must be positive
//   - agent max_tokens must be between 1 and 100000 when set
//   - agent temperature must be between 0 and 2 when set
//   - history max_entries must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateProviderConfig("openai", &cfg.Providers.OpenAI); err != nil {
		return err
	}
	if err := validateProviderConfig("anthropic", &cfg.Providers.Anthropic); err != nil {
		return err
	}

	agents := map[string]*AgentConfig{
		"research": &cfg.Agents.Research,
		"writing":  &cfg.Agents.Writing,
		"coding":   &cfg.Agents.Coding,
		"general":  &cfg.Agents.General,
	}
	for name, ac := range agents {
		if err := validateAgentConfig(name, ac); err != nil {
			return err
		}
	}

	if cfg.History.MaxEntries <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidHistory,
			"history.max_entries must be positive, got %d", cfg.History.MaxEntries)
	}

	return nil
}

// validateProviderConfig checks a single provider's configuration values.
func validateProviderConfig(name string, cfg *ProviderConfig) error {
	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidProvider,
			"providers.%s.timeout must be positive, got %s", name, cfg.Timeout)
	}
	return nil
}

// validateAgentConfig checks a single agent's tuning values.
func validateAgentConfig(name string, cfg *AgentConfig) error {
	if cfg.MaxTokens < 0 || cfg.MaxTokens > 100000 {
		return errors.Wrapf(errors.ErrConfigInvalidAgent,
			"agents.%s.max_tokens must be between 0 and 100000, got %d", name, cfg.MaxTokens)
	}
	if cfg.Temperature != nil && (*cfg.Temperature < 0 || *cfg.Temperature > 2) {
		return errors.Wrapf(errors.ErrConfigInvalidAgent,
			"agents.%s.temperature must be between 0 and 2, got %g", name, *cfg.Temperature)
	}
	return nil
}
