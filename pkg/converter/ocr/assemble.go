package ocr

import (
	"fmt"
	"math"
	"strings"

	"github.com/notemark/notemark/pkg/converter"
)

// Assemble renders the canonical result into the final note document. It is
// a pure function: the same result and options always produce identical
// output.
func Assemble(name string, meta *converter.Metadata, result *Result, options *converter.ConvertOptions) string {
	if options == nil {
		options = new(converter.ConvertOptions)
	}

	var b strings.Builder

	b.WriteString("# " + documentTitle(name, meta, options) + "\n")

	if rows := metadataRows(meta); len(rows) > 0 {
		b.WriteString("\n## Document Information\n\n")
		writeTable(&b, rows)
	}

	if rows := infoRows(result.Info); len(rows) > 0 {
		b.WriteString("\n## OCR Information\n\n")
		writeTable(&b, rows)
	}

	if len(result.Pages) == 0 {
		b.WriteString("\n*No page content was extracted from this document.*\n")

		if result.Text != "" {
			b.WriteString("\n## Document Content\n\n")
			b.WriteString(result.Text + "\n")
		}

		return b.String()
	}

	for _, page := range result.Pages {
		b.WriteString(fmt.Sprintf("\n## Page %d\n", page.Number))

		if page.Confidence > 0 {
			b.WriteString(fmt.Sprintf("\n> OCR Confidence: %d%%\n", percentage(page.Confidence)))
		}

		if page.Width > 0 || page.Height > 0 {
			b.WriteString(fmt.Sprintf("\n> Dimensions: %g × %g\n", page.Width, page.Height))
		}

		text := strings.TrimSpace(page.Text)

		if text == "" {
			text = "*No text content was extracted from this page.*"
		}

		b.WriteString("\n" + text + "\n")
	}

	return b.String()
}

func documentTitle(name string, meta *converter.Metadata, options *converter.ConvertOptions) string {
	if options.Title != "" {
		return options.Title
	}

	if meta != nil && meta.Title != "" {
		return meta.Title
	}

	if name != "" {
		return name
	}

	return "Document"
}

type row struct {
	Property string
	Value    string
}

func metadataRows(meta *converter.Metadata) []row {
	if meta == nil {
		return nil
	}

	var rows []row

	add := func(property, value string) {
		if value == "" {
			return
		}

		rows = append(rows, row{property, value})
	}

	add("Author", meta.Author)
	add("Subject", meta.Subject)
	add("Keywords", meta.Keywords)
	add("Creator", meta.Creator)
	add("Producer", meta.Producer)
	add("Created", meta.CreationDate)
	add("Modified", meta.ModificationDate)

	if meta.Pages > 0 {
		add("Pages", fmt.Sprintf("%d", meta.Pages))
	}

	return rows
}

func infoRows(info DocumentInfo) []row {
	var rows []row

	add := func(property, value string) {
		if value == "" {
			return
		}

		rows = append(rows, row{property, value})
	}

	if info.Model != "" && info.Model != "unknown" {
		add("Model", info.Model)
	}

	if info.Language != "" && info.Language != "unknown" {
		add("Language", info.Language)
	}

	if info.ProcessingTime > 0 {
		add("Processing Time", fmt.Sprintf("%gs", info.ProcessingTime))
	}

	if info.Confidence > 0 {
		add("Confidence", fmt.Sprintf("%d%%", percentage(info.Confidence)))
	}

	if info.Usage != nil {
		if info.Usage.PromptTokens > 0 {
			add("Prompt Tokens", fmt.Sprintf("%d", info.Usage.PromptTokens))
		}

		if info.Usage.CompletionTokens > 0 {
			add("Completion Tokens", fmt.Sprintf("%d", info.Usage.CompletionTokens))
		}

		if info.Usage.TotalTokens > 0 {
			add("Total Tokens", fmt.Sprintf("%d", info.Usage.TotalTokens))
		}
	}

	add("Error", info.Error)

	return rows
}

func writeTable(b *strings.Builder, rows []row) {
	b.WriteString("| Property | Value |\n")
	b.WriteString("|---|---|\n")

	for _, r := range rows {
		b.WriteString("| " + r.Property + " | " + r.Value + " |\n")
	}
}

func percentage(confidence float64) int {
	return int(math.Round(confidence * 100))
}
