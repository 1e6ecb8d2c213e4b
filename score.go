package pagelens

import (
	"sort"
	"unicode/utf8"
)

// Thresholds below which a populated field still looks untrustworthy.
const (
	shortNameLen        = 10
	shortDescriptionLen = 25
)

// QualityScore computes the additive quality score for a product extracted
// from the page at pageURL. Each factor is capped individually but the sum
// is intentionally not clamped: a product rich in images, specifications,
// and features can legitimately exceed 100.
func QualityScore(p *Product, pageURL string) int {
	score := 0

	if n := len(p.Name) / 4; n > 25 {
		score += 25
	} else {
		score += n
	}
	if n := len(p.Description) / 25; n > 20 {
		score += 20
	} else {
		score += n
	}
	if p.Price != "" {
		score += 15
	}
	if n := len(p.Images) * 3; n > 15 {
		score += 15
	} else {
		score += n
	}
	if n := len(p.Specifications); n > 10 {
		score += 10
	} else {
		score += n
	}
	if n := len(p.Features); n > 10 {
		score += 10
	} else {
		score += n
	}
	if p.URL != "" && p.URL != pageURL {
		score += 5
	}
	return score
}

// CompletenessScore measures how many of the product's core fields are
// populated, as a 0-100 percentage. The presence of images, specifications,
// and features counts alongside the scalar fields.
func CompletenessScore(p *Product) int {
	fields := []string{
		p.Name, p.Description, p.Price, p.Category,
		p.Brand, p.Availability, p.URL,
	}

	populated := 0
	for _, f := range fields {
		if f != "" {
			populated++
		}
	}
	if len(p.Images) > 0 {
		populated++
	}
	if len(p.Specifications) > 0 {
		populated++
	}
	if len(p.Features) > 0 {
		populated++
	}

	total := len(fields) + 3
	return (populated*100 + total/2) / total
}

// ReliabilityScore starts at 100 and is penalized for missing or suspect
// fields, floored at 0. A candidate missing its name, images, and category
// at once carries no trustworthy signal and scores 0 outright.
func ReliabilityScore(p *Product) int {
	if p.Name == "" && len(p.Images) == 0 && p.Category == "" {
		return 0
	}

	score := 100
	if p.Name == "" {
		score -= 30
	} else if utf8.RuneCountInString(p.Name) < shortNameLen {
		score -= 20
	}
	if p.Price == "" && p.Description == "" {
		score -= 20
	}
	if p.Description != "" && utf8.RuneCountInString(p.Description) < shortDescriptionLen {
		score -= 10
	}
	if len(p.Images) == 0 {
		score -= 15
	}
	if p.Category == "" {
		score -= 10
	}
	if score < 0 {
		score = 0
	}
	return score
}

// ScoreProducts fills the computed scores of every product in place and
// returns the slice sorted by quality score descending. Confidence breaks
// quality ties so the ordering is deterministic.
func ScoreProducts(products []*Product, pageURL string) []*Product {
	for _, p := range products {
		p.QualityScore = QualityScore(p, pageURL)
		p.CompletenessScore = CompletenessScore(p)
		p.ReliabilityScore = ReliabilityScore(p)
	}

	sort.SliceStable(products, func(i, j int) bool {
		if products[i].QualityScore != products[j].QualityScore {
			return products[i].QualityScore > products[j].QualityScore
		}
		return products[i].ConfidenceScore > products[j].ConfidenceScore
	})
	return products
}
