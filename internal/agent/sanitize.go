package agent

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/mrz1836/conductor/internal/constants"
)

// RedactionMarker replaces matched prompt-injection spans in user input.
// Sanitization neutralizes patterns in place; it never rejects the request.
const RedactionMarker = "[REDACTED]"

// injectionPatterns are signature patterns of prompt-injection attempts.
// Matching is case-insensitive. The marker itself matches none of these, so
// sanitization is idempotent: re-running it on cleaned text is a no-op.
var injectionPatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// Instruction-override attempts
	regexp.MustCompile(`(?i)ignore\s+(all\s+|any\s+)?(previous|prior|above)\s+(instructions?|prompts?|messages?)`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+|any\s+)?(previous|prior|above)\s+(instructions?|prompts?|messages?)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+|any\s+)?(previous|prior|your)\s+(instructions?|prompts?|conversations?)`),
	regexp.MustCompile(`(?i)new\s+instructions?\s*:`),

	// Role-reassignment attempts
	regexp.MustCompile(`(?i)you\s+are\s+now\s+an?\s`),
	regexp.MustCompile(`(?i)act\s+as\s+if\s+you\s+(are|were)\s`),

	// System-prompt probing
	regexp.MustCompile(`(?i)reveal\s+(the|your)\s+system\s+prompt`),
	regexp.MustCompile(`(?i)repeat\s+(the|your)\s+system\s+prompt`),

	// Chat-template markers that should never appear in user content
	regexp.MustCompile(`(?im)^\s*system\s*:`),
	regexp.MustCompile(`\[INST\]`),
	regexp.MustCompile(`\[/INST\]`),
	regexp.MustCompile(`<\|im_start\|>`),
	regexp.MustCompile(`<\|im_end\|>`),
}

// Sanitizer neutralizes prompt-injection signatures in free-text input
// fields before they reach a prompt template.
type Sanitizer struct {
	logger zerolog.Logger
}

// NewSanitizer creates a sanitizer that logs a warning for every redaction.
func NewSanitizer(logger zerolog.Logger) *Sanitizer {
	return &Sanitizer{logger: logger}
}

// Clean sanitizes one free-text field: it truncates to the field-specific
// maximum length, strips non-printable characters except newline and tab,
// and replaces any injection-signature span with the redaction marker.
// The whole request is never rejected; patterns are neutralized in place.
func (s *Sanitizer) Clean(field, value string, maxLen int) string {
	if value == "" {
		return value
	}

	if maxLen > 0 && len(value) > maxLen {
		value = truncateAtRuneBoundary(value, maxLen)
		s.logger.Debug().
			Str("field", field).
			Int("max_length", maxLen).
			Msg("input field truncated")
	}

	value = stripNonPrintable(value)

	for _, pattern := range injectionPatterns {
		if !pattern.MatchString(value) {
			continue
		}
		value = pattern.ReplaceAllString(value, RedactionMarker)
		s.logger.Warn().
			Str("field", field).
			Str("pattern", pattern.String()).
			Msg("prompt injection pattern redacted")
	}

	return value
}

// stripNonPrintable removes control and non-printable characters,
// preserving newline and tab.
func stripNonPrintable(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, value)
}

// previousOutputExcerpt renders a truncated excerpt of a prior chain step's
// output for embedding into the next step's prompt. Map results are rendered
// as compact JSON; anything else uses its string form.
func previousOutputExcerpt(input map[string]any) string {
	prev, ok := input["previous_output"]
	if !ok || prev == nil {
		return ""
	}

	var text string
	switch v := prev.(type) {
	case string:
		text = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		text = string(encoded)
	}

	if len(text) > constants.PreviousOutputExcerptLength {
		text = truncateAtRuneBoundary(text, constants.PreviousOutputExcerptLength)
	}
	return text
}

// truncateAtRuneBoundary cuts value to at most maxLen bytes, backing off to
// the nearest rune boundary so a multibyte character is never split.
func truncateAtRuneBoundary(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	for maxLen > 0 && !utf8.RuneStart(value[maxLen]) {
		maxLen--
	}
	return value[:maxLen]
}
