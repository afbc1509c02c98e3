package metadata

import (
	"context"

	"github.com/notemark/notemark/pkg/converter"
)

// Provider extracts document properties. Implementations are opaque to the
// conversion pipeline; a failed extraction simply yields no metadata.
type Provider interface {
	Extract(ctx context.Context, file converter.File) (*converter.Metadata, error)
}
