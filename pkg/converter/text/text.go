package text

import (
	"context"
	"path"
	"slices"
	"strings"
	"unicode"

	"github.com/notemark/notemark/pkg/converter"
)

var _ converter.Provider = &Converter{}

type Converter struct {
}

func New() (*Converter, error) {
	return &Converter{}, nil
}

func (c *Converter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (*converter.Document, error) {
	if options == nil {
		options = new(converter.ConvertOptions)
	}

	if !detectText(file) {
		return nil, converter.ErrUnsupported
	}

	return &converter.Document{
		Name: strings.TrimSuffix(file.Name, path.Ext(file.Name)) + ".md",

		Content:     string(file.Content),
		ContentType: "text/markdown",
	}, nil
}

func detectText(file converter.File) bool {
	if isSupported(file) {
		return true
	}

	var printableCount int

	for _, b := range file.Content {
		if b == 0 {
			return false
		}

		if unicode.IsPrint(rune(b)) || b == '\n' || b == '\r' || b == '\t' {
			printableCount++
		}
	}

	return printableCount > (len(file.Content) * 90 / 100)
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
