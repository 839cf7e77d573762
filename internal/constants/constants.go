// Package constants defines shared constants for the Conductor orchestration core.
//
// This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package constants

import "time"

// Provider defaults.
const (
	// DefaultProviderTimeout is the maximum duration for a single LLM round trip.
	DefaultProviderTimeout = 120 * time.Second

	// DefaultMaxTokens bounds response length when the caller does not specify one.
	DefaultMaxTokens = 2000

	// ConnectionTestMaxTokens is the response budget for connectivity probes.
	// Kept minimal so a test round trip costs close to nothing.
	ConnectionTestMaxTokens = 5

	// OpenAIDefaultBaseURL is the OpenAI-compatible chat completions endpoint root.
	OpenAIDefaultBaseURL = "https://api.openai.com/v1"

	// AnthropicDefaultBaseURL is the Anthropic messages endpoint root.
	AnthropicDefaultBaseURL = "https://api.anthropic.com/v1"

	// AnthropicVersion is the API version header value sent on every request.
	AnthropicVersion = "2023-06-01"

	// OpenAIDefaultModel is used when neither config nor request specify a model.
	OpenAIDefaultModel = "gpt-4o-mini"

	// AnthropicDefaultModel is used when neither config nor request specify a model.
	AnthropicDefaultModel = "claude-sonnet-4-20250514"
)

// Agent defaults. Temperatures are fixed per agent domain: coding favors
// determinism, writing favors variety.
const (
	// ResearchTemperature is the sampling temperature for research tasks.
	ResearchTemperature = 0.3

	// WritingTemperature is the sampling temperature for writing tasks.
	WritingTemperature = 0.7

	// CodingTemperature is the sampling temperature for coding tasks.
	CodingTemperature = 0.2

	// GeneralTemperature is the sampling temperature for general tasks.
	GeneralTemperature = 0.5

	// WritingShortMaxTokens is the response budget for short-form writing.
	WritingShortMaxTokens = 500

	// WritingMediumMaxTokens is the response budget for medium-form writing.
	WritingMediumMaxTokens = 1200

	// WritingLongMaxTokens is the response budget for long-form writing.
	WritingLongMaxTokens = 3000

	// WritingTokensPerWord converts a requested word count to a token budget.
	WritingTokensPerWord = 1.5

	// MaxParsedKeyPoints caps extracted bullet/numbered key points per response.
	MaxParsedKeyPoints = 10

	// MaxParsedReviewItems caps extracted issues and recommendations per review.
	MaxParsedReviewItems = 10
)

// Input sanitization bounds. Free-text fields are truncated to these maximums
// before injection scanning; limits vary by how much context a field carries.
const (
	// MaxQueryLength bounds research queries and question text.
	MaxQueryLength = 5000

	// MaxContentLength bounds document/content payloads (largest field).
	MaxContentLength = 50000

	// MaxRequirementsLength bounds writing/coding requirement text.
	MaxRequirementsLength = 10000

	// MaxInstructionsLength bounds free-form instruction text.
	MaxInstructionsLength = 5000

	// MaxContextLength bounds supplemental context text.
	MaxContextLength = 10000

	// MaxErrorMessageLength bounds error messages passed to debug tasks.
	MaxErrorMessageLength = 2000

	// MaxTopicLength bounds short topic/title fields.
	MaxTopicLength = 500

	// PreviousOutputExcerptLength bounds the excerpt of a prior chain step's
	// output embedded into the next step's prompt.
	PreviousOutputExcerptLength = 800
)

// Orchestration defaults.
const (
	// DefaultHistorySize bounds the in-memory task history (LRU eviction).
	DefaultHistorySize = 1000

	// DefaultHistoryListLimit is how many tasks a history listing returns
	// when the caller does not specify a limit.
	DefaultHistoryListLimit = 50
)

// Logging configuration.
const (
	// ConductorHome is the default home directory name (~/.conductor).
	ConductorHome = ".conductor"

	// LogsDir is the subdirectory for log files within the conductor home.
	LogsDir = "logs"

	// CLILogFileName is the rotating CLI log file name.
	CLILogFileName = "conductor.log"

	// LogMaxSizeMB is the maximum log file size before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of rotated log files.
	LogMaxAgeDays = 30

	// LogCompress controls gzip compression of rotated log files.
	LogCompress = true
)
