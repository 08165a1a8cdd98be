package mock

import (
	"context"

	"github.com/progdex/progdex"
)

var _ progdex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of progdex.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error)
}

func (e *Extractor) Extract(ctx context.Context, text, sourceURL string) ([]*progdex.Program, error) {
	return e.ExtractFn(ctx, text, sourceURL)
}
