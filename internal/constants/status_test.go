package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_Terminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   TaskStatus
		terminal bool
	}{
		{TaskStatusPending, false},
		{TaskStatusRunning, false},
		{TaskStatusCompleted, true},
		{TaskStatusFailed, true},
		{TaskStatusCancelled, true},
	}

	for _, tc := range tests {
		t.Run(tc.status.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.terminal, tc.status.Terminal())
		})
	}
}
