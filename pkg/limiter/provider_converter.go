package limiter

import (
	"context"

	"github.com/notemark/notemark/pkg/converter"

	"golang.org/x/time/rate"
)

type Limiter interface {
	limiterSetup()
}

type Converter interface {
	Limiter
	converter.Provider
}

type limitedConverter struct {
	limiter  *rate.Limiter
	provider converter.Provider
}

func NewConverter(l *rate.Limiter, p converter.Provider) Converter {
	return &limitedConverter{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedConverter) limiterSetup() {
}

func (p *limitedConverter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (*converter.Document, error) {
	if p.limiter != nil {
		p.limiter.Wait(ctx)
	}

	return p.provider.Convert(ctx, file, options)
}
