package ocr

import (
	"fmt"
	"strings"

	"github.com/notemark/notemark/pkg/converter"
)

// Fallback builds the minimal document delivered when the pipeline fails.
// It accepts whatever survived the failure point, including nil metadata,
// a nil or partial result, and a nil error, and cannot itself fail.
func Fallback(meta *converter.Metadata, result *Result, err error) string {
	var b strings.Builder

	b.WriteString("# OCR Conversion Result\n")

	b.WriteString("\n## Error Information\n\n")

	message := "unknown error"

	if err != nil && err.Error() != "" {
		message = err.Error()
	}

	b.WriteString(message + "\n")

	if rows := metadataRows(meta); len(rows) > 0 || (meta != nil && meta.Title != "") {
		b.WriteString("\n## Document Information\n\n")

		if meta.Title != "" {
			b.WriteString("- **Title:** " + meta.Title + "\n")
		}

		for _, r := range rows {
			b.WriteString("- **" + r.Property + ":** " + r.Value + "\n")
		}
	}

	b.WriteString("\n## OCR Result\n\n")

	content := fallbackContent(result)

	if content == "" {
		content = "*No OCR content available*"
	}

	b.WriteString(content + "\n")

	return b.String()
}

func fallbackContent(result *Result) string {
	if result == nil {
		return ""
	}

	if result.Text != "" {
		return result.Text
	}

	var parts []string

	for _, page := range result.Pages {
		text := strings.TrimSpace(page.Text)

		if text == "" {
			continue
		}

		parts = append(parts, fmt.Sprintf("### Page %d\n\n%s", page.Number, text))
	}

	return strings.Join(parts, "\n\n")
}
