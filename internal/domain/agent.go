// Package domain provides shared domain types for the Conductor orchestration core.
package domain

// AgentType represents a task-specialist category (e.g., "research", "coding").
// This determines which agent implementation processes a task.
type AgentType string

// AgentType constants define the supported agent categories.
const (
	// AgentTypeResearch analyzes, summarizes, and extracts information from text.
	AgentTypeResearch AgentType = "research"

	// AgentTypeWriting generates and transforms prose content.
	AgentTypeWriting AgentType = "writing"

	// AgentTypeCoding generates, reviews, and debugs source code.
	AgentTypeCoding AgentType = "coding"

	// AgentTypeGeneral handles free-form prompts with no task specialization.
	AgentTypeGeneral AgentType = "general"
)

// String returns the string representation of the AgentType.
// This implements fmt.Stringer for convenient logging and debugging.
func (a AgentType) String() string {
	return string(a)
}

// IsValid checks if the agent type is a recognized category.
func (a AgentType) IsValid() bool {
	switch a {
	case AgentTypeResearch, AgentTypeWriting, AgentTypeCoding, AgentTypeGeneral:
		return true
	}
	return false
}

// AllAgentTypes returns every supported agent category in stable order.
func AllAgentTypes() []AgentType {
	return []AgentType{AgentTypeResearch, AgentTypeWriting, AgentTypeCoding, AgentTypeGeneral}
}
