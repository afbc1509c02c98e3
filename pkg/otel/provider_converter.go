package otel

import (
	"context"
	"time"

	"github.com/notemark/notemark/pkg/converter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Converter interface {
	Observable
	converter.Provider
}

type observableConverter struct {
	name string

	provider converter.Provider

	duration metric.Float64Histogram
}

func NewConverter(name string, p converter.Provider) Converter {
	meter := otel.Meter(instrumentationName)

	duration, _ := meter.Float64Histogram("converter.duration",
		metric.WithDescription("Conversion duration"),
		metric.WithUnit("s"),
	)

	return &observableConverter{
		name: name,

		provider: p,

		duration: duration,
	}
}

func (p *observableConverter) otelSetup() {
}

func (p *observableConverter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (*converter.Document, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "convert "+p.name)
	defer span.End()

	started := time.Now()

	result, err := p.provider.Convert(ctx, file, options)

	if p.duration != nil {
		p.duration.Record(ctx, time.Since(started).Seconds(), metric.WithAttributes(
			attribute.String("converter", p.name),
			attribute.Bool("error", err != nil),
		))
	}

	return result, err
}
