package agent

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResearchResponse(t *testing.T) {
	t.Parallel()

	t.Run("summary and bullets", func(t *testing.T) {
		t.Parallel()
		content := "The report shows growth.\nRevenue is up.\n\n- Revenue grew 12%\n- Costs were flat\n* Margins improved"
		summary, points := parseResearchResponse(content)

		assert.Equal(t, "The report shows growth. Revenue is up.", summary)
		assert.Equal(t, []string{"Revenue grew 12%", "Costs were flat", "Margins improved"}, points)
	})

	t.Run("numbered list", func(t *testing.T) {
		t.Parallel()
		content := "Summary line.\n\n1. first point\n2) second point"
		summary, points := parseResearchResponse(content)

		assert.Equal(t, "Summary line.", summary)
		assert.Equal(t, []string{"first point", "second point"}, points)
	})

	t.Run("key points capped", func(t *testing.T) {
		t.Parallel()
		var sb strings.Builder
		sb.WriteString("Summary.\n\n")
		for i := 0; i < 20; i++ {
			fmt.Fprintf(&sb, "- point %d\n", i)
		}
		_, points := parseResearchResponse(sb.String())
		assert.Len(t, points, 10)
	})

	t.Run("no bullets", func(t *testing.T) {
		t.Parallel()
		summary, points := parseResearchResponse("Just one paragraph of text.")
		assert.Equal(t, "Just one paragraph of text.", summary)
		assert.Empty(t, points)
	})
}

func TestCountWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, countWords(""))
	assert.Equal(t, 3, countWords("one two three"))
	assert.Equal(t, 4, countWords("  spaced \n out\ttext here "))
}

func TestExtractCodeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("tagged block with explanation", func(t *testing.T) {
		t.Parallel()
		content := "Here is the function:\n```go\nfunc Add(a, b int) int { return a + b }\n```\nIt adds two integers."
		blocks, explanation := extractCodeBlocks(content)

		require.Len(t, blocks, 1)
		assert.Equal(t, "go", blocks[0].Language)
		assert.Equal(t, "func Add(a, b int) int { return a + b }", blocks[0].Code)
		assert.Contains(t, explanation, "Here is the function:")
		assert.Contains(t, explanation, "It adds two integers.")
		assert.NotContains(t, explanation, "func Add")
	})

	t.Run("untagged block defaults to text", func(t *testing.T) {
		t.Parallel()
		blocks, _ := extractCodeBlocks("```\nplain snippet\n```")
		require.Len(t, blocks, 1)
		assert.Equal(t, "text", blocks[0].Language)
	})

	t.Run("multiple blocks", func(t *testing.T) {
		t.Parallel()
		content := "```python\nprint(1)\n```\nand\n```sql\nSELECT 1;\n```"
		blocks, _ := extractCodeBlocks(content)
		require.Len(t, blocks, 2)
		assert.Equal(t, "python", blocks[0].Language)
		assert.Equal(t, "sql", blocks[1].Language)
	})

	t.Run("no blocks", func(t *testing.T) {
		t.Parallel()
		blocks, explanation := extractCodeBlocks("prose only")
		assert.Empty(t, blocks)
		assert.Equal(t, "prose only", explanation)
	})
}

func TestExtractReviewItems(t *testing.T) {
	t.Parallel()

	t.Run("buckets by keyword", func(t *testing.T) {
		t.Parallel()
		content := strings.Join([]string{
			"- Issue: nil pointer dereference on empty input",
			"- The error handling swallows the root cause",
			"- Recommend adding input validation",
			"- Consider extracting the parsing logic",
			"unrelated prose line",
		}, "\n")
		issues, recommendations := extractReviewItems(content)

		assert.Len(t, issues, 2)
		assert.Len(t, recommendations, 2)
	})

	t.Run("capped at limit", func(t *testing.T) {
		t.Parallel()
		var sb strings.Builder
		for i := 0; i < 25; i++ {
			fmt.Fprintf(&sb, "- bug number %d\n", i)
		}
		issues, _ := extractReviewItems(sb.String())
		assert.Len(t, issues, 10)
	})
}
