package ocr_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/notemark/notemark/pkg/converter/ocr"

	"github.com/stretchr/testify/require"
)

func TestRenderHeading(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"heading","level":2,"text":"Section"}`))
	require.NoError(t, err)
	require.Equal(t, "## Section", out)
}

func TestRenderHeadingClampsLevel(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"heading","level":9,"text":"Deep"}`))
	require.NoError(t, err)
	require.Equal(t, "###### Deep", out)

	out, err = ocr.RenderBlock(json.RawMessage(`{"type":"heading","text":"Top"}`))
	require.NoError(t, err)
	require.Equal(t, "# Top", out)
}

func TestRenderParagraph(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"paragraph","text":"Body text"}`))
	require.NoError(t, err)
	require.Equal(t, "Body text", out)

	out, err = ocr.RenderBlock(json.RawMessage(`{"type":"paragraph"}`))
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRenderOrderedList(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"list","ordered":true,"items":["one","two","three"]}`))
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	for i, line := range lines {
		require.True(t, strings.HasPrefix(line, fmt.Sprintf("%d. ", i+1)), line)
	}
}

func TestRenderUnorderedList(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"bullet_list","items":[{"text":"alpha"},{"text":"beta"}]}`))
	require.NoError(t, err)
	require.Equal(t, "- alpha\n- beta", out)
}

func TestRenderListWithoutItems(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"list"}`))
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRenderTable(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"table","rows":[{"cells":["a","b"]},{"cells":["1","2"]}]}`))
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "| a | b |", lines[0])
	require.Equal(t, "|---|---|", lines[1])
	require.Equal(t, "| 1 | 2 |", lines[2])

	// separator pipe count matches the header row
	require.Equal(t, strings.Count(lines[0], "|"), strings.Count(lines[1], "|"))
}

func TestRenderTableSingleRow(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"table","rows":[{"cells":["only"]}]}`))
	require.NoError(t, err)
	require.Equal(t, "| only |", out)
}

func TestRenderTableMissingCells(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"table","rows":[{"cells":["a"]},{}]}`))
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Equal(t, "| |", lines[2])
}

func TestRenderImageFallbacks(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"image","caption":"Chart","src":"chart.png"}`))
	require.NoError(t, err)
	require.Equal(t, "![Chart](chart.png)", out)

	out, err = ocr.RenderBlock(json.RawMessage(`{"type":"figure","alt":"Alt text","url":"https://example.com/i.png"}`))
	require.NoError(t, err)
	require.Equal(t, "![Alt text](https://example.com/i.png)", out)

	out, err = ocr.RenderBlock(json.RawMessage(`{"type":"image"}`))
	require.NoError(t, err)
	require.Equal(t, "![Image](image-reference)", out)
}

func TestRenderCode(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"code","language":"go","text":"fmt.Println()"}`))
	require.NoError(t, err)
	require.Equal(t, "```go\nfmt.Println()\n```", out)

	out, err = ocr.RenderBlock(json.RawMessage(`{"type":"code_block","content":"x = 1"}`))
	require.NoError(t, err)
	require.Equal(t, "```\nx = 1\n```", out)
}

func TestRenderQuote(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"quote","text":"line one\nline two"}`))
	require.NoError(t, err)
	require.Equal(t, "> line one\n> line two", out)
}

func TestRenderUnknownType(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"type":"mystery","text":"still here"}`))
	require.NoError(t, err)
	require.Equal(t, "still here", out)

	out, err = ocr.RenderBlock(json.RawMessage(`{"type":"mystery","content":"content here"}`))
	require.NoError(t, err)
	require.Equal(t, "content here", out)
}

func TestRenderUntypedTextBlock(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`{"text":"untyped"}`))
	require.NoError(t, err)
	require.Equal(t, "untyped", out)
}

func TestRenderBareString(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`"just text"`))
	require.NoError(t, err)
	require.Equal(t, "just text", out)
}

func TestRenderNull(t *testing.T) {
	out, err := ocr.RenderBlock(json.RawMessage(`null`))
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = ocr.RenderBlock(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRenderBlocksDropsFailures(t *testing.T) {
	blocks := []json.RawMessage{
		json.RawMessage(`{"type":"heading","level":1,"text":"Title"}`),
		json.RawMessage(`{"type":"heading","level":"broken"}`),
		json.RawMessage(`{"type":"paragraph","text":""}`),
		json.RawMessage(`{"type":"paragraph","text":"Body"}`),
	}

	out := ocr.RenderBlocks(blocks)
	require.Equal(t, "# Title\n\nBody", out)
}
