package agent

import (
	"regexp"
	"strings"

	"github.com/mrz1836/conductor/internal/constants"
)

// bulletPrefixes mark the list styles recognized as key points.
var bulletPrefixes = []string{"- ", "* ", "• "} //nolint:gochecknoglobals // Recognized list markers

// numberedLine matches "1. point" and "1) point" style list items.
var numberedLine = regexp.MustCompile(`^\d+[.)]\s+(.+)$`) //nolint:gochecknoglobals // Compiled once

// codeBlock matches fenced code blocks with an optional language tag.
var codeBlock = regexp.MustCompile("(?s)```([a-zA-Z0-9_+-]*)\\n(.*?)```") //nolint:gochecknoglobals // Compiled once

// parseResearchResponse splits a structured research answer into its leading
// summary paragraph and the bullet or numbered key points that follow,
// capped at MaxParsedKeyPoints.
func parseResearchResponse(content string) (string, []string) {
	var (
		summaryLines []string
		keyPoints    []string
		summaryDone  bool
	)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(summaryLines) > 0 {
				summaryDone = true
			}
			continue
		}

		if point, ok := listItem(trimmed); ok {
			summaryDone = true
			if len(keyPoints) < constants.MaxParsedKeyPoints {
				keyPoints = append(keyPoints, point)
			}
			continue
		}

		if !summaryDone {
			summaryLines = append(summaryLines, trimmed)
		}
	}

	return strings.Join(summaryLines, " "), keyPoints
}

// listItem extracts the text of a bullet or numbered list line.
func listItem(line string) (string, bool) {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	if m := numberedLine.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// countWords counts whitespace-separated tokens.
func countWords(content string) int {
	return len(strings.Fields(content))
}

// CodeBlock is one fenced code block extracted from a model response.
type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// extractCodeBlocks pulls every fenced code block out of the response and
// returns the blocks plus the remaining prose with the blocks removed.
func extractCodeBlocks(content string) ([]CodeBlock, string) {
	matches := codeBlock.FindAllStringSubmatch(content, -1)
	blocks := make([]CodeBlock, 0, len(matches))
	for _, m := range matches {
		lang := m[1]
		if lang == "" {
			lang = "text"
		}
		blocks = append(blocks, CodeBlock{
			Language: lang,
			Code:     strings.TrimRight(m[2], "\n"),
		})
	}

	explanation := codeBlock.ReplaceAllString(content, "")
	explanation = strings.TrimSpace(explanation)
	return blocks, explanation
}

// extractReviewItems scans a code-review response line by line and buckets
// lines into issues and recommendations by keyword, each capped at
// MaxParsedReviewItems. Lines matching neither bucket are ignored.
func extractReviewItems(content string) ([]string, []string) {
	var issues, recommendations []string

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if point, ok := listItem(trimmed); ok {
			trimmed = point
		}

		lower := strings.ToLower(trimmed)
		switch {
		case containsAny(lower, "issue", "bug", "error", "problem", "vulnerability", "incorrect"):
			if len(issues) < constants.MaxParsedReviewItems {
				issues = append(issues, trimmed)
			}
		case containsAny(lower, "recommend", "suggest", "consider", "improve", "should"):
			if len(recommendations) < constants.MaxParsedReviewItems {
				recommendations = append(recommendations, trimmed)
			}
		}
	}

	return issues, recommendations
}

// containsAny reports whether the text contains any of the keywords.
func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
