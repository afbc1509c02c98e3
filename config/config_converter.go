package config

import (
	"errors"
	"strings"

	"github.com/notemark/notemark/pkg/converter"
	"github.com/notemark/notemark/pkg/converter/multi"
	"github.com/notemark/notemark/pkg/converter/ocr"
	"github.com/notemark/notemark/pkg/converter/pdf"
	"github.com/notemark/notemark/pkg/converter/text"
	"github.com/notemark/notemark/pkg/limiter"
	"github.com/notemark/notemark/pkg/metadata"
	"github.com/notemark/notemark/pkg/otel"
)

func (cfg *Config) RegisterConverter(id string, p converter.Provider) {
	if cfg.converters == nil {
		cfg.converters = make(map[string]converter.Provider)
	}

	cfg.converters[id] = p
}

func (cfg *Config) Converter(id string) (converter.Provider, error) {
	if cfg.converters != nil {
		if c, ok := cfg.converters[id]; ok {
			return c, nil
		}
	}

	return nil, errors.New("converter not found: " + id)
}

type converterConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Model string `yaml:"model"`

	Limit *int `yaml:"limit"`
}

func (cfg *Config) registerConverters(f *configFile) error {
	if f.Converters.IsZero() {
		cfg.RegisterConverter("", multi.New())
		return nil
	}

	var configs map[string]converterConfig

	if err := f.Converters.Decode(&configs); err != nil {
		return err
	}

	var converters []converter.Provider

	for _, node := range f.Converters.Content {
		id := node.Value

		config, ok := configs[id]

		if !ok {
			continue
		}

		p, err := createConverter(config)

		if err != nil {
			return err
		}

		if _, ok := p.(limiter.Converter); !ok {
			p = limiter.NewConverter(createLimiter(config.Limit), p)
		}

		if _, ok := p.(otel.Converter); !ok {
			p = otel.NewConverter(id, p)
		}

		converters = append(converters, p)

		cfg.RegisterConverter(id, p)
	}

	cfg.RegisterConverter("", multi.New(converters...))

	return nil
}

func createConverter(cfg converterConfig) (converter.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "ocr":
		return ocrConverter(cfg)

	case "pdf":
		return pdfConverter(cfg)

	case "text":
		return textConverter(cfg)

	default:
		return nil, errors.New("invalid converter type: " + cfg.Type)
	}
}

func ocrConverter(cfg converterConfig) (converter.Provider, error) {
	options := []ocr.Option{
		ocr.WithMetadata(metadata.NewPDF()),
	}

	if cfg.URL != "" {
		options = append(options, ocr.WithURL(cfg.URL))
	}

	if cfg.Token != "" {
		options = append(options, ocr.WithToken(cfg.Token))
	}

	if cfg.Model != "" {
		options = append(options, ocr.WithModel(cfg.Model))
	}

	return ocr.New(options...)
}

func pdfConverter(cfg converterConfig) (converter.Provider, error) {
	return pdf.New()
}

func textConverter(cfg converterConfig) (converter.Provider, error) {
	return text.New()
}
