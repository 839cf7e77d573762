package provider

import "github.com/mrz1836/conductor/internal/domain"

// Static model catalogs, defined at compile time and never mutated.
// Model names change frequently; check current models at:
// - OpenAI: https://platform.openai.com/docs/models
// - Anthropic: https://docs.anthropic.com/en/docs/about-claude/models

// openAIModels returns the static OpenAI catalog, ordered by capability.
func openAIModels() []domain.ModelInfo {
	return []domain.ModelInfo{
		{
			ID:                "gpt-4o",
			Name:              "GPT-4o",
			MaxTokens:         128000,
			SupportsVision:    true,
			SupportsFunctions: true,
			Description:       "Flagship multimodal model for complex tasks",
		},
		{
			ID:                "gpt-4o-mini",
			Name:              "GPT-4o mini",
			MaxTokens:         128000,
			SupportsVision:    true,
			SupportsFunctions: true,
			Description:       "Fast, low-cost model for routine tasks",
		},
		{
			ID:                "gpt-4-turbo",
			Name:              "GPT-4 Turbo",
			MaxTokens:         128000,
			SupportsVision:    true,
			SupportsFunctions: true,
			Description:       "Previous-generation large-context model",
		},
		{
			ID:                "gpt-3.5-turbo",
			Name:              "GPT-3.5 Turbo",
			MaxTokens:         16385,
			SupportsVision:    false,
			SupportsFunctions: true,
			Description:       "Legacy model for simple, high-volume tasks",
		},
	}
}

// anthropicModels returns the static Anthropic catalog, ordered by capability.
func anthropicModels() []domain.ModelInfo {
	return []domain.ModelInfo{
		{
			ID:                "claude-opus-4-20250514",
			Name:              "Claude Opus 4",
			MaxTokens:         200000,
			SupportsVision:    true,
			SupportsFunctions: true,
			Description:       "Most capable model for complex reasoning",
		},
		{
			ID:                "claude-sonnet-4-20250514",
			Name:              "Claude Sonnet 4",
			MaxTokens:         200000,
			SupportsVision:    true,
			SupportsFunctions: true,
			Description:       "Balanced capability and cost for most tasks",
		},
		{
			ID:                "claude-3-5-haiku-20241022",
			Name:              "Claude 3.5 Haiku",
			MaxTokens:         200000,
			SupportsVision:    true,
			SupportsFunctions: true,
			Description:       "Fastest model for lightweight tasks",
		},
	}
}
