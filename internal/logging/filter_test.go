package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers construct fake secret strings at runtime to avoid
// secret-scanner false positives. These use obvious test/example patterns.
func fakeAnthropicKey() string  { return "sk-" + "ant-api03-test-key-do-not-use" }
func fakeOpenAIKey() string     { return "sk-" + "TESTONLYxxxxxxxxxxxxxxxxxxxx1234" }
func fakeBearerToken() string   { return "Bearer " + "TESTONLYbearertoken1234567890" }
func fakeGenericSecret() string { return "password=" + "testonlypassword123" }

func TestContainsSensitiveData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "anthropic api key", input: "using key " + fakeAnthropicKey(), expected: true},
		{name: "openai api key", input: "key: " + fakeOpenAIKey(), expected: true},
		{name: "bearer token", input: fakeBearerToken(), expected: true},
		{name: "password assignment", input: fakeGenericSecret(), expected: true},
		{name: "plain message", input: "executing task task-1", expected: false},
		{name: "short sk prefix", input: "sk-short", expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ContainsSensitiveData(tc.input))
		})
	}
}

func TestFilterSensitiveValue(t *testing.T) {
	t.Parallel()

	t.Run("key replaced with marker", func(t *testing.T) {
		t.Parallel()
		filtered := FilterSensitiveValue("key is " + fakeOpenAIKey() + " ok")
		assert.NotContains(t, filtered, fakeOpenAIKey())
		assert.Contains(t, filtered, RedactedValue)
	})

	t.Run("clean text unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "nothing secret here", FilterSensitiveValue("nothing secret here"))
	})
}

func TestIsSensitiveFieldName(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSensitiveFieldName("api_key"))
	assert.True(t, IsSensitiveFieldName("OPENAI_API_KEY"))
	assert.True(t, IsSensitiveFieldName("Authorization"))
	assert.False(t, IsSensitiveFieldName("task_id"))
	assert.False(t, IsSensitiveFieldName("model"))
}

func TestRedactIfSensitive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RedactedValue, RedactIfSensitive("api_key", "anything"))
	assert.Equal(t, "value", RedactIfSensitive("model", "value"))
}

func TestFilteringWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fw := NewFilteringWriter(&buf)

	input := "credential " + fakeAnthropicKey() + " leaked"
	n, err := fw.Write([]byte(input))
	require.NoError(t, err)

	// Reports the original length so callers don't see a short write.
	assert.Equal(t, len(input), n)
	assert.NotContains(t, buf.String(), fakeAnthropicKey())
	assert.Contains(t, buf.String(), RedactedValue)
}

func TestSensitiveDataHook(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())

	logger.Info().Msg("key " + fakeOpenAIKey())
	assert.Contains(t, buf.String(), `"contains_filtered_data":true`)

	buf.Reset()
	logger.Info().Msg("plain message")
	assert.NotContains(t, buf.String(), "contains_filtered_data")
}
