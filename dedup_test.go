package pagelens_test

import (
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateProducts(t *testing.T) {
	t.Parallel()

	t.Run("higher confidence wins for same name and price", func(t *testing.T) {
		t.Parallel()

		low := &pagelens.Product{Name: "Cablu HDMI 2m", Price: "29,99 lei", Source: "text_pattern", ConfidenceScore: 0.60}
		high := &pagelens.Product{Name: "cablu hdmi 2m!", Price: "29.99 RON", Source: "structured_data", ConfidenceScore: 0.95}

		out := pagelens.DeduplicateProducts([]*pagelens.Product{low, high})

		require.Len(t, out, 1)
		assert.Equal(t, "structured_data", out[0].Source)
		assert.Equal(t, 0.95, out[0].ConfidenceScore)
	})

	t.Run("first occurrence keeps its position", func(t *testing.T) {
		t.Parallel()

		a := &pagelens.Product{Name: "Laptop Gaming", Price: "4999 lei", ConfidenceScore: 0.70}
		b := &pagelens.Product{Name: "Mouse Wireless", Price: "99 lei", ConfidenceScore: 0.65}
		dup := &pagelens.Product{Name: "laptop gaming", Price: "4.999 lei", ConfidenceScore: 0.95}

		out := pagelens.DeduplicateProducts([]*pagelens.Product{a, b, dup})

		require.Len(t, out, 2)
		assert.Equal(t, 0.95, out[0].ConfidenceScore)
		assert.Equal(t, "Mouse Wireless", out[1].Name)
	})

	t.Run("same name different price stays separate", func(t *testing.T) {
		t.Parallel()

		a := &pagelens.Product{Name: "Tricou bumbac", Price: "49 lei", ConfidenceScore: 0.75}
		b := &pagelens.Product{Name: "Tricou bumbac", Price: "59 lei", ConfidenceScore: 0.75}

		out := pagelens.DeduplicateProducts([]*pagelens.Product{a, b})

		assert.Len(t, out, 2)
	})

	t.Run("prices differing only in decimal suffix stay separate", func(t *testing.T) {
		t.Parallel()

		a := &pagelens.Product{Name: "Laptop Gaming", Price: "4999 lei", ConfidenceScore: 0.70}
		b := &pagelens.Product{Name: "Laptop Gaming", Price: "4.999,00 lei", ConfidenceScore: 0.95}

		out := pagelens.DeduplicateProducts([]*pagelens.Product{a, b})

		assert.Len(t, out, 2)
	})

	t.Run("lower confidence duplicate is dropped", func(t *testing.T) {
		t.Parallel()

		high := &pagelens.Product{Name: "Boxa portabila", Price: "199 lei", Source: "semantic", ConfidenceScore: 0.75}
		low := &pagelens.Product{Name: "Boxa portabila", Price: "199 lei", Source: "image_based", ConfidenceScore: 0.55}

		out := pagelens.DeduplicateProducts([]*pagelens.Product{high, low})

		require.Len(t, out, 1)
		assert.Equal(t, "semantic", out[0].Source)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()

		out := pagelens.DeduplicateProducts(nil)

		assert.Empty(t, out)
	})
}
