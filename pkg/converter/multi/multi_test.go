package multi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/notemark/notemark/pkg/converter"
	"github.com/notemark/notemark/pkg/converter/multi"

	"github.com/stretchr/testify/require"
)

type stub struct {
	document *converter.Document
	err      error
}

func (s *stub) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (*converter.Document, error) {
	return s.document, s.err
}

func TestConvertFirstMatch(t *testing.T) {
	c := multi.New(
		&stub{err: converter.ErrUnsupported},
		&stub{document: &converter.Document{Content: "# second"}},
		&stub{document: &converter.Document{Content: "# third"}},
	)

	result, err := c.Convert(context.Background(), converter.File{Name: "a.pdf"}, nil)

	require.NoError(t, err)
	require.Equal(t, "# second", result.Content)
}

func TestConvertAllUnsupported(t *testing.T) {
	c := multi.New(
		&stub{err: converter.ErrUnsupported},
		&stub{err: converter.ErrUnsupported},
	)

	_, err := c.Convert(context.Background(), converter.File{Name: "a.bin"}, nil)

	require.ErrorIs(t, err, converter.ErrUnsupported)
}

func TestConvertSurfacesLastFailure(t *testing.T) {
	failure := errors.New("provider down")

	c := multi.New(
		&stub{err: failure},
		&stub{err: converter.ErrUnsupported},
	)

	_, err := c.Convert(context.Background(), converter.File{Name: "a.pdf"}, nil)

	require.ErrorIs(t, err, failure)
}

func TestConvertEmpty(t *testing.T) {
	_, err := multi.New().Convert(context.Background(), converter.File{}, nil)

	require.ErrorIs(t, err, converter.ErrUnsupported)
}
