package metadata

import (
	"bytes"
	"context"
	"errors"

	"github.com/notemark/notemark/pkg/converter"

	"github.com/ledongthuc/pdf"
)

var _ Provider = &PDF{}

type PDF struct {
}

func NewPDF() *PDF {
	return &PDF{}
}

func (p *PDF) Extract(ctx context.Context, file converter.File) (*converter.Metadata, error) {
	if len(file.Content) == 0 {
		return nil, errors.New("empty document")
	}

	reader, err := pdf.NewReader(bytes.NewReader(file.Content), int64(len(file.Content)))

	if err != nil {
		return nil, err
	}

	result := &converter.Metadata{
		Pages: reader.NumPage(),
	}

	info := reader.Trailer().Key("Info")

	if info.Kind() == pdf.Dict {
		result.Title = stringValue(info.Key("Title"))
		result.Author = stringValue(info.Key("Author"))
		result.Subject = stringValue(info.Key("Subject"))
		result.Keywords = stringValue(info.Key("Keywords"))

		result.Creator = stringValue(info.Key("Creator"))
		result.Producer = stringValue(info.Key("Producer"))

		result.CreationDate = stringValue(info.Key("CreationDate"))
		result.ModificationDate = stringValue(info.Key("ModDate"))
	}

	return result, nil
}

func stringValue(v pdf.Value) string {
	if v.Kind() != pdf.String {
		return ""
	}

	return v.RawString()
}
