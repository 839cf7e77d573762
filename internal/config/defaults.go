package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/conductor/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files and environment variables.
func DefaultConfig() *Config {
	return &Config{
		Providers: ProvidersConfig{
			OpenAI: ProviderConfig{
				// Timeout: 2 minutes covers slow completions without
				// letting a hung request pin a caller indefinitely.
				Timeout: constants.DefaultProviderTimeout,
			},
			Anthropic: ProviderConfig{
				Timeout: constants.DefaultProviderTimeout,
			},
		},
		Agents: AgentsConfig{
			Research: AgentConfig{MaxTokens: constants.DefaultMaxTokens},
			Writing:  AgentConfig{MaxTokens: constants.DefaultMaxTokens},
			Coding:   AgentConfig{MaxTokens: constants.DefaultMaxTokens},
			General:  AgentConfig{MaxTokens: constants.DefaultMaxTokens},
		},
		History: HistoryConfig{
			// MaxEntries: bounded so a long-lived process cannot grow
			// history without limit; oldest entries are evicted.
			MaxEntries: constants.DefaultHistorySize,
		},
	}
}

// setDefaults registers default values on a viper instance.
// Keys mirror the mapstructure tags on Config.
func setDefaults(v *viper.Viper) {
	v.SetDefault("providers.openai.timeout", constants.DefaultProviderTimeout)
	v.SetDefault("providers.anthropic.timeout", constants.DefaultProviderTimeout)

	v.SetDefault("agents.research.max_tokens", constants.DefaultMaxTokens)
	v.SetDefault("agents.writing.max_tokens", constants.DefaultMaxTokens)
	v.SetDefault("agents.coding.max_tokens", constants.DefaultMaxTokens)
	v.SetDefault("agents.general.max_tokens", constants.DefaultMaxTokens)

	v.SetDefault("history.max_entries", constants.DefaultHistorySize)
}
