package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/notemark/notemark/pkg/converter"
	"github.com/notemark/notemark/pkg/metadata"

	"github.com/ledongthuc/pdf"
)

var _ converter.Provider = &Converter{}

// Converter extracts embedded text from PDFs locally. Scanned documents
// yield no text here; those go through the ocr converter instead.
type Converter struct {
	metadata metadata.Provider
}

type Option func(*Converter)

func WithMetadata(provider metadata.Provider) Option {
	return func(c *Converter) {
		c.metadata = provider
	}
}

func New(options ...Option) (*Converter, error) {
	c := &Converter{
		metadata: metadata.NewPDF(),
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Converter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (*converter.Document, error) {
	if options == nil {
		options = new(converter.ConvertOptions)
	}

	if !isSupported(file) {
		return nil, converter.ErrUnsupported
	}

	reader, err := pdf.NewReader(bytes.NewReader(file.Content), int64(len(file.Content)))

	if err != nil {
		return nil, err
	}

	pages := reader.NumPage()

	if pages == 0 {
		return nil, errors.New("document has no pages")
	}

	if options.MaxPages > 0 && pages > options.MaxPages {
		pages = options.MaxPages
	}

	var meta *converter.Metadata

	if c.metadata != nil {
		meta, _ = c.metadata.Extract(ctx, file)
	}

	var b strings.Builder

	b.WriteString("# " + documentTitle(file.Name, meta, options) + "\n")

	var extracted bool

	for i := 1; i <= pages; i++ {
		page := reader.Page(i)

		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)

		if err != nil {
			continue
		}

		text = strings.TrimSpace(text)

		if text == "" {
			continue
		}

		extracted = true

		b.WriteString(fmt.Sprintf("\n## Page %d\n\n%s\n", i, text))
	}

	if !extracted {
		return nil, errors.New("no embedded text")
	}

	return &converter.Document{
		Name: strings.TrimSuffix(file.Name, path.Ext(file.Name)) + ".md",

		Content:     b.String(),
		ContentType: "text/markdown",
	}, nil
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

func isSupported(file converter.File) bool {
	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		if slices.Contains(SupportedMimeTypes, file.ContentType) {
			return true
		}
	}

	return false
}
