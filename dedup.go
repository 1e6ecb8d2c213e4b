package pagelens

import (
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var (
	nonWordRe  = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	nonDigitRe = regexp.MustCompile(`[^0-9]+`)
)

// dedupKey computes the heuristic identity of a product candidate: the
// lowercased name stripped of non-word characters joined with the digits of
// the price. Minor name variance (whitespace, punctuation) collapses to the
// same key while distinct products sharing a price stay separate.
func dedupKey(p *Product) uint64 {
	name := nonWordRe.ReplaceAllString(strings.ToLower(p.Name), "")
	price := nonDigitRe.ReplaceAllString(p.Price, "")
	return xxhash.Sum64String(name + "|" + price)
}

// DeduplicateProducts merges candidates from all strategies. When two
// candidates share an identity key, the one with the higher confidence
// score survives; order of first occurrence is otherwise preserved.
func DeduplicateProducts(products []*Product) []*Product {
	seen := make(map[uint64]int, len(products))
	out := make([]*Product, 0, len(products))

	for _, p := range products {
		key := dedupKey(p)
		if idx, ok := seen[key]; ok {
			if p.ConfidenceScore > out[idx].ConfidenceScore {
				out[idx] = p
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, p)
	}
	return out
}
