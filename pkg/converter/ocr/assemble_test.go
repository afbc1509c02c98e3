package ocr_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/notemark/notemark/pkg/converter"
	"github.com/notemark/notemark/pkg/converter/ocr"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func TestAssemble(t *testing.T) {
	result := ocr.Normalize([]byte(`{
		"model": "ocr-large",
		"language": "en",
		"processing_time": 1.5,
		"confidence": 0.87,
		"pages": [{"page_number": 1, "width": 612, "height": 792, "confidence": 0.9, "blocks": [
			{"type":"heading","level":1,"text":"Title"},
			{"type":"paragraph","text":"Body"}
		]}]
	}`))

	meta := &converter.Metadata{
		Title:  "My Document",
		Author: "Jane Doe",
		Pages:  1,
	}

	out := ocr.Assemble("scan.pdf", meta, result, nil)

	require.True(t, strings.HasPrefix(out, "# My Document\n"))

	require.Contains(t, out, "## Document Information")
	require.Contains(t, out, "| Author | Jane Doe |")

	require.Contains(t, out, "## OCR Information")
	require.Contains(t, out, "| Model | ocr-large |")
	require.Contains(t, out, "| Language | en |")
	require.Contains(t, out, "| Processing Time | 1.5s |")
	require.Contains(t, out, "| Confidence | 87% |")

	require.Contains(t, out, "## Page 1")
	require.Contains(t, out, "> OCR Confidence: 90%")
	require.Contains(t, out, "> Dimensions: 612 × 792")

	// page text sits inside the page section, heading before body
	pageIdx := strings.Index(out, "## Page 1")
	titleIdx := strings.Index(out, "# Title")
	bodyIdx := strings.Index(out, "Body")

	require.Greater(t, titleIdx, pageIdx)
	require.Greater(t, bodyIdx, titleIdx)
}

func TestAssembleIdempotent(t *testing.T) {
	result := ocr.Normalize([]byte(`{"model":"m","pages":[{"text":"hello"}]}`))

	options := &converter.ConvertOptions{Title: "Stable"}

	first := ocr.Assemble("doc.pdf", nil, result, options)
	second := ocr.Assemble("doc.pdf", nil, result, options)

	require.Equal(t, first, second)
}

func TestAssembleTitleFallbacks(t *testing.T) {
	result := ocr.Normalize([]byte(`{"pages":[{"text":"x"}]}`))

	out := ocr.Assemble("scan.pdf", nil, result, &converter.ConvertOptions{Title: "Chosen"})
	require.True(t, strings.HasPrefix(out, "# Chosen\n"))

	out = ocr.Assemble("scan.pdf", &converter.Metadata{Title: "From Meta"}, result, nil)
	require.True(t, strings.HasPrefix(out, "# From Meta\n"))

	out = ocr.Assemble("scan.pdf", nil, result, nil)
	require.True(t, strings.HasPrefix(out, "# scan.pdf\n"))

	out = ocr.Assemble("", nil, result, nil)
	require.True(t, strings.HasPrefix(out, "# Document\n"))
}

func TestAssembleEmptyPageText(t *testing.T) {
	result := ocr.Normalize([]byte(`{"pages":[{"page_number":1}]}`))

	out := ocr.Assemble("doc.pdf", nil, result, nil)

	require.Contains(t, out, "## Page 1")
	require.Contains(t, out, "*No text content was extracted from this page.*")
}

func TestAssembleDocumentContentFallback(t *testing.T) {
	result := ocr.Normalize([]byte(`{"pages":[],"text":"raw fallback"}`))

	out := ocr.Assemble("doc.pdf", nil, result, nil)

	require.Contains(t, out, "## Document Content")
	require.Contains(t, out, "raw fallback")
	require.NotContains(t, out, "## Page")
}

func TestAssembleOmitsDefaultRows(t *testing.T) {
	result := ocr.Normalize([]byte(`{"pages":[{"text":"x"}]}`))

	out := ocr.Assemble("doc.pdf", nil, result, nil)

	require.NotContains(t, out, "| Model |")
	require.NotContains(t, out, "| Language |")
	require.NotContains(t, out, "## Document Information")
}

func TestAssembleErrorRow(t *testing.T) {
	result := ocr.Normalize([]byte(`{"pages": "broken"}`))

	out := ocr.Assemble("doc.pdf", nil, result, nil)

	require.Contains(t, out, "## OCR Information")
	require.Contains(t, out, "| Error |")
}

func TestAssembleProducesValidMarkdown(t *testing.T) {
	result := ocr.Normalize([]byte(`{
		"model": "m",
		"pages": [{"blocks": [
			{"type":"heading","level":1,"text":"Title"},
			{"type":"table","rows":[{"cells":["a","b"]},{"cells":["1","2"]}]},
			{"type":"list","ordered":true,"items":["one","two"]},
			{"type":"code","language":"go","text":"x := 1"}
		]}]
	}`))

	out := ocr.Assemble("doc.pdf", &converter.Metadata{Author: "A"}, result, nil)

	var buf bytes.Buffer
	require.NoError(t, goldmark.New().Convert([]byte(out), &buf))
	require.NotEmpty(t, buf.String())
}
