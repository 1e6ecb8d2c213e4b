package pagelens

import "context"

// Enhancer improves extracted products using an external model. It is used
// only in ai_enhanced and comprehensive modes and is strictly best-effort:
// callers fall back to the heuristic results when enhancement fails.
//
// Enhance returns a new slice; the input products are never mutated.
type Enhancer interface {
	Enhance(ctx context.Context, pageText string, products []*Product) ([]*Product, error)
}
