package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/conductor/internal/constants"
)

func testTime() time.Time {
	return time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
}

func TestNewAgentTask(t *testing.T) {
	t.Parallel()

	input := map[string]any{"task_type": "summarize"}
	task := NewAgentTask("task-1", AgentTypeResearch, input, "user-1", testTime())

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, AgentTypeResearch, task.Type)
	assert.Equal(t, input, task.InputData)
	assert.Equal(t, constants.TaskStatusPending, task.Status)
	assert.Equal(t, testTime(), task.CreatedAt)
	assert.Equal(t, "user-1", task.UserID)
	assert.Nil(t, task.StartedAt)
	assert.Nil(t, task.CompletedAt)
	assert.NotNil(t, task.Metadata)
}

func TestAgentTask_MarkRunning(t *testing.T) {
	t.Parallel()

	t.Run("from pending", func(t *testing.T) {
		t.Parallel()
		task := NewAgentTask("t", AgentTypeCoding, nil, "", testTime())
		task.MarkRunning(testTime().Add(time.Second))

		assert.Equal(t, constants.TaskStatusRunning, task.Status)
		require.NotNil(t, task.StartedAt)
		assert.Equal(t, testTime().Add(time.Second), *task.StartedAt)
	})

	t.Run("ignored from terminal state", func(t *testing.T) {
		t.Parallel()
		task := NewAgentTask("t", AgentTypeCoding, nil, "", testTime())
		task.MarkRunning(testTime())
		task.MarkCompleted(map[string]any{"ok": true}, testTime())

		task.MarkRunning(testTime().Add(time.Minute))
		assert.Equal(t, constants.TaskStatusCompleted, task.Status)
	})
}

func TestAgentTask_MarkCompleted(t *testing.T) {
	t.Parallel()

	t.Run("from running", func(t *testing.T) {
		t.Parallel()
		task := NewAgentTask("t", AgentTypeWriting, nil, "", testTime())
		task.MarkRunning(testTime())
		result := map[string]any{"content": "done"}
		task.MarkCompleted(result, testTime().Add(time.Second))

		assert.Equal(t, constants.TaskStatusCompleted, task.Status)
		assert.Equal(t, result, task.Result)
		require.NotNil(t, task.CompletedAt)
		assert.True(t, task.Terminal())
	})

	t.Run("terminal state not re-entered", func(t *testing.T) {
		t.Parallel()
		task := NewAgentTask("t", AgentTypeWriting, nil, "", testTime())
		task.MarkRunning(testTime())
		task.MarkFailed("boom", testTime())

		task.MarkCompleted(map[string]any{"late": true}, testTime())
		assert.Equal(t, constants.TaskStatusFailed, task.Status)
		assert.Nil(t, task.Result)
	})
}

func TestAgentTask_MarkFailed(t *testing.T) {
	t.Parallel()

	task := NewAgentTask("t", AgentTypeResearch, nil, "", testTime())
	task.MarkRunning(testTime())
	task.MarkFailed("provider unavailable", testTime().Add(time.Second))

	assert.Equal(t, constants.TaskStatusFailed, task.Status)
	assert.Equal(t, "provider unavailable", task.Error)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.Terminal())
}

func TestAgentTask_MarkCancelled(t *testing.T) {
	t.Parallel()

	t.Run("from pending", func(t *testing.T) {
		t.Parallel()
		task := NewAgentTask("t", AgentTypeGeneral, nil, "", testTime())
		task.MarkCancelled(testTime())

		assert.Equal(t, constants.TaskStatusCancelled, task.Status)
		assert.True(t, task.Terminal())
		assert.Nil(t, task.StartedAt)
	})

	t.Run("ignored once running", func(t *testing.T) {
		t.Parallel()
		task := NewAgentTask("t", AgentTypeGeneral, nil, "", testTime())
		task.MarkRunning(testTime())
		task.MarkCancelled(testTime())

		assert.Equal(t, constants.TaskStatusRunning, task.Status)
	})
}

func TestAgentTask_ToMap(t *testing.T) {
	t.Parallel()

	t.Run("user id omitted by default", func(t *testing.T) {
		t.Parallel()
		task := NewAgentTask("t", AgentTypeResearch, map[string]any{"q": "x"}, "user-1", testTime())
		m := task.ToMap(false)

		assert.NotContains(t, m, "user_id")
		assert.Equal(t, "t", m["id"])
		assert.Equal(t, "research", m["type"])
		assert.Equal(t, "pending", m["status"])
	})

	t.Run("user id included on request", func(t *testing.T) {
		t.Parallel()
		task := NewAgentTask("t", AgentTypeResearch, nil, "user-1", testTime())
		m := task.ToMap(true)

		assert.Equal(t, "user-1", m["user_id"])
	})

	t.Run("optional fields appear once set", func(t *testing.T) {
		t.Parallel()
		task := NewAgentTask("t", AgentTypeResearch, nil, "", testTime())
		m := task.ToMap(false)
		assert.NotContains(t, m, "started_at")
		assert.NotContains(t, m, "completed_at")
		assert.NotContains(t, m, "error")
		assert.NotContains(t, m, "result")

		task.MarkRunning(testTime())
		task.MarkFailed("boom", testTime())
		m = task.ToMap(false)
		assert.Contains(t, m, "started_at")
		assert.Contains(t, m, "completed_at")
		assert.Equal(t, "boom", m["error"])
	})
}

func TestAgentStep_ToMap(t *testing.T) {
	t.Parallel()

	step := AgentStep{
		Index:     2,
		Action:    "call_llm",
		Input:     map[string]any{"max_tokens": 100},
		Timestamp: testTime(),
	}
	m := step.ToMap()

	assert.Equal(t, 2, m["index"])
	assert.Equal(t, "call_llm", m["action"])
	assert.Contains(t, m, "input")
	assert.NotContains(t, m, "output")
	assert.NotContains(t, m, "reasoning")
}
