package htmltomarkdown_test

import (
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic markup", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		got, err := c.Convert(`<h2>Specificatii</h2><p>Procesor <strong>rapid</strong> si ecran <em>mare</em>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, got, "## Specificatii")
		assert.Contains(t, got, "**rapid**")
		assert.Contains(t, got, "*mare*")
	})

	t.Run("converts links and lists", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		got, err := c.Convert(`<ul><li><a href="https://example.com">Detalii</a></li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, got, "[Detalii](https://example.com)")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		_, err := c.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
	})
}
