// Package domain provides shared domain types for the Conductor orchestration core.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case per architecture requirements.
package domain

import (
	"time"

	"github.com/mrz1836/conductor/internal/constants"
)

// AgentTask represents a single unit of agent work and its outcome.
// Tasks are created by the orchestration service, mutated only through their
// own lifecycle transitions, and held in an in-memory history for the
// lifetime of the process.
//
// Example JSON representation:
//
//	{
//	    "id": "0b9af1f2-5f2e-4a3d-9d2e-0c6e1f1a7b42",
//	    "type": "research",
//	    "input_data": {"task_type": "summarize", "content": "..."},
//	    "status": "completed",
//	    "result": {"summary": "...", "word_count": 42},
//	    "created_at": "2026-08-23T10:00:00Z",
//	    "started_at": "2026-08-23T10:00:00Z",
//	    "completed_at": "2026-08-23T10:00:04Z",
//	    "metadata": {"_chain_context": {...}}
//	}
type AgentTask struct {
	// ID is the unique identifier for the task, generated at creation.
	ID string `json:"id"`

	// Type is the agent category that processes this task.
	Type AgentType `json:"type"`

	// InputData is the caller-supplied payload; semantics are agent-specific.
	InputData map[string]any `json:"input_data"`

	// Status is the current state in the task lifecycle.
	// Uses constants.TaskStatus values (pending, running, completed, failed, cancelled).
	Status constants.TaskStatus `json:"status"`

	// Result is the structured output once completed; nil otherwise.
	Result map[string]any `json:"result,omitempty"`

	// Error is the human-readable failure reason once failed; empty otherwise.
	Error string `json:"error,omitempty"`

	// CreatedAt is when the task was created (UTC).
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is when agent execution began (nil if never started).
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the task reached a terminal state (nil if not yet).
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Metadata stores free-form side-channel data (chain correlation, etc.).
	Metadata map[string]any `json:"metadata,omitempty"`

	// UserID is an opaque owner reference for the caller's own authorization
	// checks. The core never interprets it. Omitted from ToMap by default.
	UserID string `json:"-"`
}

// NewAgentTask creates a pending task with the given identity and payload.
// The now argument is the creation timestamp; callers pass clock.Now() so
// time is controllable in tests.
func NewAgentTask(id string, agentType AgentType, input map[string]any, userID string, now time.Time) *AgentTask {
	return &AgentTask{
		ID:        id,
		Type:      agentType,
		InputData: input,
		Status:    constants.TaskStatusPending,
		CreatedAt: now.UTC(),
		Metadata:  make(map[string]any),
		UserID:    userID,
	}
}

// MarkRunning transitions the task from pending to running, stamping
// started_at exactly once. Transitions out of any other state are ignored.
func (t *AgentTask) MarkRunning(now time.Time) {
	if t.Status != constants.TaskStatusPending {
		return
	}
	t.Status = constants.TaskStatusRunning
	utc := now.UTC()
	t.StartedAt = &utc
}

// MarkCompleted transitions the task to completed with its result, stamping
// completed_at exactly once. Terminal states are never re-entered.
func (t *AgentTask) MarkCompleted(result map[string]any, now time.Time) {
	if t.Status.Terminal() {
		return
	}
	t.Status = constants.TaskStatusCompleted
	t.Result = result
	utc := now.UTC()
	t.CompletedAt = &utc
}

// MarkFailed transitions the task to failed with a human-readable reason,
// stamping completed_at exactly once. Terminal states are never re-entered.
func (t *AgentTask) MarkFailed(reason string, now time.Time) {
	if t.Status.Terminal() {
		return
	}
	t.Status = constants.TaskStatusFailed
	t.Error = reason
	utc := now.UTC()
	t.CompletedAt = &utc
}

// MarkCancelled transitions a pending task to cancelled. Only tasks that have
// not begun execution can be cancelled; once running, a task terminates in
// completed or failed.
func (t *AgentTask) MarkCancelled(now time.Time) {
	if t.Status != constants.TaskStatusPending {
		return
	}
	t.Status = constants.TaskStatusCancelled
	utc := now.UTC()
	t.CompletedAt = &utc
}

// Terminal reports whether the task has reached a final state.
func (t *AgentTask) Terminal() bool {
	return t.Status.Terminal()
}

// ToMap serializes the task for external callers. UserID is omitted unless
// includeUserID is set; it feeds upstream access-control checks and should
// not leak through ordinary task listings.
func (t *AgentTask) ToMap(includeUserID bool) map[string]any {
	m := map[string]any{
		"id":         t.ID,
		"type":       t.Type.String(),
		"input_data": t.InputData,
		"status":     t.Status.String(),
		"created_at": t.CreatedAt.Format(time.RFC3339),
	}
	if t.Result != nil {
		m["result"] = t.Result
	}
	if t.Error != "" {
		m["error"] = t.Error
	}
	if t.StartedAt != nil {
		m["started_at"] = t.StartedAt.Format(time.RFC3339)
	}
	if t.CompletedAt != nil {
		m["completed_at"] = t.CompletedAt.Format(time.RFC3339)
	}
	if len(t.Metadata) > 0 {
		m["metadata"] = t.Metadata
	}
	if includeUserID && t.UserID != "" {
		m["user_id"] = t.UserID
	}
	return m
}

// AgentStep is one unit of an agent's internal execution trace, recorded for
// debuggability. Steps are append-only within a single Execute call and are
// ordered by Index.
type AgentStep struct {
	// Index is the zero-based position of this step within the trace.
	Index int `json:"index"`

	// Action labels what the agent did (e.g., "sanitize_input", "call_llm").
	Action string `json:"action"`

	// Input is a snapshot of the step's input values.
	Input map[string]any `json:"input,omitempty"`

	// Output is a snapshot of the step's output values, if any.
	Output map[string]any `json:"output,omitempty"`

	// Reasoning optionally records why the agent took this step.
	Reasoning string `json:"reasoning,omitempty"`

	// Timestamp is when the step was recorded (UTC).
	Timestamp time.Time `json:"timestamp"`
}

// ToMap returns the step as a plain map for embedding in result payloads.
func (s AgentStep) ToMap() map[string]any {
	m := map[string]any{
		"index":     s.Index,
		"action":    s.Action,
		"timestamp": s.Timestamp.Format(time.RFC3339),
	}
	if len(s.Input) > 0 {
		m["input"] = s.Input
	}
	if len(s.Output) > 0 {
		m["output"] = s.Output
	}
	if s.Reasoning != "" {
		m["reasoning"] = s.Reasoning
	}
	return m
}
