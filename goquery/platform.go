package goquery

import (
	"strings"

	"github.com/pagelens/pagelens"
)

// Ensure PlatformDetector implements pagelens.PlatformDetector at compile time.
var _ pagelens.PlatformDetector = (*PlatformDetector)(nil)

// PlatformDetector fingerprints known e-commerce platforms from markup
// signatures found anywhere in the HTML or the target URL.
type PlatformDetector struct{}

// NewPlatformDetector creates a new PlatformDetector.
func NewPlatformDetector() *PlatformDetector {
	return &PlatformDetector{}
}

// Detect counts how many of each platform's indicator strings appear
// case-insensitively in the page HTML or URL. A platform needs at least
// two matching indicators; one generic class name is not proof. The first
// platform crossing the threshold wins, in fixed table order.
func (d *PlatformDetector) Detect(page *pagelens.Page) pagelens.Platform {
	haystack := strings.ToLower(page.HTML + " " + page.URL)

	for _, entry := range platformIndicators {
		matches := 0
		for _, indicator := range entry.Indicators {
			if strings.Contains(haystack, indicator) {
				matches++
			}
			if matches >= 2 {
				return entry.Platform
			}
		}
	}
	return pagelens.PlatformUnknown
}
