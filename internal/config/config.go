// Package config provides configuration management for Conductor with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (CONDUCTOR_* prefix)
//  2. Project config (.conductor/config.yaml)
//  3. Global config (~/.conductor/config.yaml)
//  4. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for Conductor.
// It contains all configuration sections for the orchestration core.
type Config struct {
	// Providers contains per-backend LLM provider settings.
	Providers ProvidersConfig `yaml:"providers" mapstructure:"providers"`

	// Agents contains per-agent tuning (token budgets, temperature overrides).
	Agents AgentsConfig `yaml:"agents" mapstructure:"agents"`

	// History contains settings for the in-memory task history.
	History HistoryConfig `yaml:"history" mapstructure:"history"`
}

// ProvidersConfig groups settings for all supported LLM backends.
type ProvidersConfig struct {
	// OpenAI contains settings for the OpenAI-compatible backend.
	OpenAI ProviderConfig `yaml:"openai" mapstructure:"openai"`

	// Anthropic contains settings for the Anthropic backend.
	Anthropic ProviderConfig `yaml:"anthropic" mapstructure:"anthropic"`
}

// ProviderConfig contains settings for a single LLM backend.
type ProviderConfig struct {
	// BaseURL overrides the backend endpoint root. Empty uses the
	// provider's hardcoded default. Useful for proxies and compatible APIs.
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	// DefaultModel is used when a task does not specify a model.
	// Empty falls back to the provider's hardcoded default.
	DefaultModel string `yaml:"default_model,omitempty" mapstructure:"default_model"`

	// Timeout is the maximum duration for a single LLM round trip.
	// Default: 2 minutes
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// APIKeyEnvVar overrides the environment variable consulted for the
	// API key when the caller does not supply one directly.
	APIKeyEnvVar string `yaml:"api_key_env_var,omitempty" mapstructure:"api_key_env_var"`
}

// AgentsConfig groups tuning settings for all agent categories.
type AgentsConfig struct {
	// Research contains tuning for the research agent.
	Research AgentConfig `yaml:"research" mapstructure:"research"`

	// Writing contains tuning for the writing agent.
	Writing AgentConfig `yaml:"writing" mapstructure:"writing"`

	// Coding contains tuning for the coding agent.
	Coding AgentConfig `yaml:"coding" mapstructure:"coding"`

	// General contains tuning for the general agent.
	General AgentConfig `yaml:"general" mapstructure:"general"`
}

// AgentConfig contains tuning settings for a single agent category.
type AgentConfig struct {
	// MaxTokens bounds response length for this agent's LLM calls.
	// Zero uses the built-in default (writing additionally derives its
	// budget from the requested output length).
	MaxTokens int `yaml:"max_tokens,omitempty" mapstructure:"max_tokens"`

	// Temperature overrides the agent's fixed default temperature.
	// Nil keeps the built-in per-agent value.
	Temperature *float64 `yaml:"temperature,omitempty" mapstructure:"temperature"`
}

// HistoryConfig contains settings for the in-memory task history.
type HistoryConfig struct {
	// MaxEntries bounds the history size; least-recently-used tasks are
	// evicted beyond this count. Default: 1000
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
}
