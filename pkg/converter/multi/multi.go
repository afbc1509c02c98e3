package multi

import (
	"context"
	"errors"

	"github.com/notemark/notemark/pkg/converter"
)

var _ converter.Provider = &Converter{}

// Converter tries each provider in order and returns the first result.
type Converter struct {
	providers []converter.Provider
}

func New(provider ...converter.Provider) *Converter {
	return &Converter{
		providers: provider,
	}
}

func (c *Converter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (*converter.Document, error) {
	if options == nil {
		options = new(converter.ConvertOptions)
	}

	var lastErr error

	for _, p := range c.providers {
		result, err := p.Convert(ctx, file, options)

		if err != nil {
			if !errors.Is(err, converter.ErrUnsupported) {
				lastErr = err
			}

			continue
		}

		return result, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}

	return nil, converter.ErrUnsupported
}
