package constants

// TaskStatus represents the state of a task in the Conductor state machine.
// Status values use snake_case for JSON serialization compatibility.
type TaskStatus string

// Task status constants define the valid states a task can be in.
// These follow the task lifecycle state machine:
//
//	Pending → Running, Cancelled
//	Running → Completed, Failed
//
// Cancelled is reached only when the caller's context is already done before
// agent execution begins. Once an agent starts executing, the task always
// terminates in Completed or Failed. Transitions are one-way; a task never
// re-enters Running after reaching a terminal state.
const (
	// TaskStatusPending indicates a task has been created but not yet started.
	TaskStatusPending TaskStatus = "pending"

	// TaskStatusRunning indicates an agent is actively executing the task.
	TaskStatusRunning TaskStatus = "running"

	// TaskStatusCompleted indicates the task finished successfully with a result.
	TaskStatusCompleted TaskStatus = "completed"

	// TaskStatusFailed indicates the task terminated with an error.
	TaskStatusFailed TaskStatus = "failed"

	// TaskStatusCancelled indicates the caller abandoned the task before
	// agent execution began (context already done at submission).
	TaskStatusCancelled TaskStatus = "cancelled"
)

// String returns the string representation of the TaskStatus.
// This implements fmt.Stringer for convenient logging and debugging.
func (s TaskStatus) String() string {
	return string(s)
}

// Terminal reports whether the status is a final state that cannot transition.
func (s TaskStatus) Terminal() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	case TaskStatusPending, TaskStatusRunning:
		return false
	}
	return false
}
