package domain

// ModelInfo is a static catalog entry describing one backend model.
// Catalogs are defined per provider at compile time and never mutated.
type ModelInfo struct {
	// ID is the backend model identifier sent on requests.
	ID string `json:"id"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// MaxTokens is the model's maximum context size.
	MaxTokens int `json:"max_tokens"`

	// SupportsVision indicates image-input capability.
	SupportsVision bool `json:"supports_vision"`

	// SupportsFunctions indicates function/tool-calling capability.
	SupportsFunctions bool `json:"supports_functions"`

	// Description summarizes the model's intended use.
	Description string `json:"description"`
}

// ToMap returns the catalog entry as a plain map for introspection payloads.
func (m ModelInfo) ToMap() map[string]any {
	return map[string]any{
		"id":                 m.ID,
		"name":               m.Name,
		"max_tokens":         m.MaxTokens,
		"supports_vision":    m.SupportsVision,
		"supports_functions": m.SupportsFunctions,
		"description":        m.Description,
	}
}

// ModelInfoFromMap reconstructs a ModelInfo from its ToMap representation.
// Missing or mistyped keys yield zero values.
func ModelInfoFromMap(m map[string]any) ModelInfo {
	info := ModelInfo{}
	if v, ok := m["id"].(string); ok {
		info.ID = v
	}
	if v, ok := m["name"].(string); ok {
		info.Name = v
	}
	switch v := m["max_tokens"].(type) {
	case int:
		info.MaxTokens = v
	case float64:
		info.MaxTokens = int(v)
	}
	if v, ok := m["supports_vision"].(bool); ok {
		info.SupportsVision = v
	}
	if v, ok := m["supports_functions"].(bool); ok {
		info.SupportsFunctions = v
	}
	if v, ok := m["description"].(string); ok {
		info.Description = v
	}
	return info
}
