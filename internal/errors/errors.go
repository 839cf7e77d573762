// Package errors provides centralized error handling for Conductor.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrProviderNotFound indicates the requested LLM provider is not registered.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrAgentNotFound indicates the requested agent type is not registered.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrInvalidTaskType indicates a task_type value outside the agent's whitelist.
	ErrInvalidTaskType = errors.New("invalid task type")

	// ErrCompletionFailed indicates the LLM backend returned a degraded response
	// (transport fault, auth failure, rate limit, or API-level error).
	ErrCompletionFailed = errors.New("completion failed")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidProvider indicates an invalid provider configuration value.
	ErrConfigInvalidProvider = errors.New("invalid provider configuration")

	// ErrConfigInvalidAgent indicates an invalid agent configuration value.
	ErrConfigInvalidAgent = errors.New("invalid agent configuration")

	// ErrConfigInvalidHistory indicates an invalid history configuration value.
	ErrConfigInvalidHistory = errors.New("invalid history configuration")

	// ErrInvalidChain indicates a malformed chain definition (no steps,
	// missing agent type, or an unparseable chain file).
	ErrInvalidChain = errors.New("invalid chain definition")

	// ErrTaskNotFound indicates the requested task id is not present in history.
	ErrTaskNotFound = errors.New("task not found")

	// ErrMissingAPIKey indicates no API key was supplied or found in the environment.
	ErrMissingAPIKey = errors.New("missing api key")

	// ErrInvalidOutputFormat indicates an unsupported --output flag value.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)
