package agent

// capabilities builds the shared introspection payload reported by every
// agent: category, backing provider, effective model, and tuning.
func (b *BaseAgent) capabilities(taskTypes []string, defaultTemperature float64) map[string]any {
	model := b.opts.Model
	if model == "" {
		model = b.provider.DefaultModel()
	}
	return map[string]any{
		"type":        b.agentType.String(),
		"provider":    b.provider.Type().String(),
		"model":       model,
		"max_tokens":  b.maxTokens(0),
		"temperature": b.temperature(defaultTemperature),
		"task_types":  taskTypes,
	}
}
