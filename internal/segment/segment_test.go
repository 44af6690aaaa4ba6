package segment

import (
	"strings"
	"testing"

	"github.com/codegenhq/codechat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Split ────────────────────────────────────────────────────────────────────

func TestSplit_PlainText(t *testing.T) {
	got := Split("just some prose, no fences here")

	require.Len(t, got, 1)
	assert.Equal(t, models.SegmentText, got[0].Kind)
	assert.Equal(t, "just some prose, no fences here", got[0].Body)
}

func TestSplit_EmptyInput(t *testing.T) {
	assert.Empty(t, Split(""))
	assert.Empty(t, Split("   \n\t  "))
}

func TestSplit_SingleFence(t *testing.T) {
	got := Split("Here is the function:\n```go\nfunc main() {}\n```\nDone.")

	require.Len(t, got, 3)
	assert.Equal(t, models.SegmentText, got[0].Kind)
	assert.Equal(t, "Here is the function:\n", got[0].Body)

	assert.Equal(t, models.SegmentCode, got[1].Kind)
	assert.Equal(t, "go", got[1].Language)
	assert.Equal(t, "func main() {}", got[1].Body)

	assert.Equal(t, models.SegmentText, got[2].Kind)
	assert.Equal(t, "\nDone.", got[2].Body)
}

func TestSplit_FenceWithoutLanguageTag(t *testing.T) {
	got := Split("```\nplain code\n```")

	require.Len(t, got, 1)
	assert.Equal(t, models.SegmentCode, got[0].Kind)
	assert.Equal(t, "", got[0].Language)
	assert.Equal(t, "plain code", got[0].Body)
}

func TestSplit_UnterminatedFenceIsText(t *testing.T) {
	input := "before ```js\ncode"

	got := Split(input)

	require.Len(t, got, 1)
	assert.Equal(t, models.SegmentText, got[0].Kind)
	assert.Equal(t, input, got[0].Body)
}

func TestSplit_UnterminatedFenceAfterWellFormedBlock(t *testing.T) {
	got := Split("```py\nprint(1)\n```\ntrailing ```go\nunfinished")

	require.Len(t, got, 2)
	assert.Equal(t, models.SegmentCode, got[0].Kind)
	assert.Equal(t, "print(1)", got[0].Body)

	assert.Equal(t, models.SegmentText, got[1].Kind)
	assert.Equal(t, "\ntrailing ```go\nunfinished", got[1].Body)
}

func TestSplit_AdjacentCodeBlocksNotMerged(t *testing.T) {
	got := Split("```go\na\n``````go\nb\n```")

	require.Len(t, got, 2)
	assert.Equal(t, models.SegmentCode, got[0].Kind)
	assert.Equal(t, "a", got[0].Body)
	assert.Equal(t, models.SegmentCode, got[1].Kind)
	assert.Equal(t, "b", got[1].Body)
}

func TestSplit_WhitespaceOnlyGapDropped(t *testing.T) {
	got := Split("```go\na\n```\n\n```go\nb\n```")

	require.Len(t, got, 2)
	assert.Equal(t, models.SegmentCode, got[0].Kind)
	assert.Equal(t, models.SegmentCode, got[1].Kind)
}

func TestSplit_InlineBackticksStayText(t *testing.T) {
	got := Split("use ```make build``` to compile")

	require.Len(t, got, 1)
	assert.Equal(t, models.SegmentText, got[0].Kind)
	assert.Equal(t, "use ```make build``` to compile", got[0].Body)
}

func TestSplit_CodeBodyTrimmed(t *testing.T) {
	got := Split("```python\n\n  x = 1\n\n```")

	require.Len(t, got, 1)
	assert.Equal(t, "x = 1", got[0].Body)
}

// TestSplit_RoundTrip re-wraps code segments with their fence markup and
// checks the concatenation against the original, block by block.
func TestSplit_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "prose and one block",
			input: "Intro text.\n```go\nfmt.Println(\"hi\")\n```\nOutro.",
		},
		{
			name:  "two blocks different languages",
			input: "First:\n```js\nconsole.log(1)\n```\nSecond:\n```sql\nSELECT 1;\n```",
		},
		{
			name:  "block only",
			input: "```rust\nfn main() {}\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := Split(tt.input)

			var sb strings.Builder
			for _, s := range segments {
				if s.Kind == models.SegmentCode {
					sb.WriteString("```")
					sb.WriteString(s.Language)
					sb.WriteString("\n")
					sb.WriteString(s.Body)
					sb.WriteString("\n```")
				} else {
					sb.WriteString(s.Body)
				}
			}

			// Bodies are whitespace-trimmed, so compare modulo
			// whitespace collapsed at block boundaries.
			assert.Equal(t, collapse(tt.input), collapse(sb.String()))

			// Order and kinds must survive exactly.
			reSplit := Split(sb.String())
			require.Len(t, reSplit, len(segments))
			for i := range segments {
				assert.Equal(t, segments[i].Kind, reSplit[i].Kind)
				assert.Equal(t, segments[i].Language, reSplit[i].Language)
				assert.Equal(t, segments[i].Body, reSplit[i].Body)
			}
		})
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ── FirstCode ────────────────────────────────────────────────────────────────

func TestFirstCode_ReturnsFirstBlock(t *testing.T) {
	got, ok := FirstCode("a\n```go\none\n```\nb\n```go\ntwo\n```")

	require.True(t, ok)
	assert.Equal(t, "one", got.Body)
	assert.Equal(t, "go", got.Language)
}

func TestFirstCode_NoCode(t *testing.T) {
	_, ok := FirstCode("no fences at all")
	assert.False(t, ok)
}
