// Package domain provides shared domain types for the Conductor orchestration core.
package domain

import "github.com/mrz1836/conductor/internal/constants"

// Re-export TaskStatus from the constants package.
// This allows consumers to import domain types and status types together,
// providing a unified API for working with Conductor domain objects.
//
// Example usage:
//
//	import "github.com/mrz1836/conductor/internal/domain"
//
//	task := domain.AgentTask{
//	    Status: domain.TaskStatusPending,
//	}
type (
	// TaskStatus represents the state of a task in the Conductor state machine.
	TaskStatus = constants.TaskStatus
)

// Re-export TaskStatus constants for convenience.
// These mirror the values in internal/constants/status.go.
const (
	// TaskStatusPending indicates a task has been created but not yet started.
	TaskStatusPending = constants.TaskStatusPending

	// TaskStatusRunning indicates an agent is actively executing the task.
	TaskStatusRunning = constants.TaskStatusRunning

	// TaskStatusCompleted indicates the task finished successfully with a result.
	TaskStatusCompleted = constants.TaskStatusCompleted

	// TaskStatusFailed indicates the task terminated with an error.
	TaskStatusFailed = constants.TaskStatusFailed

	// TaskStatusCancelled indicates the caller abandoned the task before
	// agent execution began.
	TaskStatusCancelled = constants.TaskStatusCancelled
)
