package mock

import (
	"context"

	"github.com/pagelens/pagelens"
)

var _ pagelens.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagelens.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pagelens.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pagelens.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ pagelens.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagelens.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ pagelens.Enhancer = (*Enhancer)(nil)

// Enhancer is a mock implementation of pagelens.Enhancer.
type Enhancer struct {
	EnhanceFn func(ctx context.Context, pageText string, products []*pagelens.Product) ([]*pagelens.Product, error)
}

func (e *Enhancer) Enhance(ctx context.Context, pageText string, products []*pagelens.Product) ([]*pagelens.Product, error) {
	return e.EnhanceFn(ctx, pageText, products)
}
