// Package clock provides an abstraction for time operations to improve testability.
// Instead of calling time.Now() directly, code can use the Clock interface which
// can be mocked in tests to control time-dependent behavior.
package clock

import "time"

// Clock is an interface for time operations.
// This allows code to be tested with mock clocks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Ensure RealClock implements Clock.
var _ Clock = RealClock{}

// Fixed implements Clock by returning a preset time on every call.
// Useful in tests that assert exact lifecycle timestamps.
type Fixed struct {
	// T is the time returned by Now.
	T time.Time
}

// Now returns the preset time.
func (f Fixed) Now() time.Time {
	return f.T
}

// Ensure Fixed implements Clock.
var _ Clock = Fixed{}
