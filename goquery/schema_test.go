package goquery_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure SchemaExtractor implements pagelens.SchemaExtractor at compile time.
var _ pagelens.SchemaExtractor = (*goquery.SchemaExtractor)(nil)

func page(html string) *pagelens.Page {
	return &pagelens.Page{URL: "https://example.com/page", HTML: html}
}

func TestSchemaExtractor_JSONLD(t *testing.T) {
	t.Parallel()

	t.Run("extracts a well-formed block", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">{"@type":"Product","name":"Cablu HDMI 2m","offers":{"price":"29.99","priceCurrency":"RON"}}</script>
</head><body></body></html>`

		ext := goquery.NewSchemaExtractor()
		out, err := ext.ExtractSchema(page(html))

		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, pagelens.SchemaJSONLD, out[0].Type)
		assert.Equal(t, "Cablu HDMI 2m", out[0].Data["name"])
	})

	t.Run("malformed block is skipped without failing the run", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		html := `<html><head>
<script type="application/ld+json">{"@type":"Product","name":</script>
<script type="application/ld+json">{"@type":"Product","name":"Laptop Gaming"}</script>
</head><body></body></html>`

		ext := goquery.NewSchemaExtractor(goquery.WithSchemaLogger(logger))
		out, err := ext.ExtractSchema(page(html))

		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Laptop Gaming", out[0].Data["name"])
		assert.Contains(t, buf.String(), "malformed JSON-LD")
	})

	t.Run("top-level arrays expand to one block per entity", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">[{"@type":"Product","name":"A"},{"@type":"Product","name":"B"}]</script>
</head><body></body></html>`

		ext := goquery.NewSchemaExtractor()
		out, err := ext.ExtractSchema(page(html))

		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "A", out[0].Data["name"])
		assert.Equal(t, "B", out[1].Data["name"])
	})
}

func TestSchemaExtractor_Microdata(t *testing.T) {
	t.Parallel()

	t.Run("reads tag-appropriate value sources", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div itemscope itemtype="https://schema.org/Product">
  <span itemprop="name">Espressor automat</span>
  <meta itemprop="price" content="1299.99">
  <img itemprop="image" src="/img/espressor.jpg">
  <a itemprop="url" href="/p/espressor">details</a>
</div>
</body></html>`

		ext := goquery.NewSchemaExtractor()
		out, err := ext.ExtractSchema(page(html))

		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, pagelens.SchemaMicrodata, out[0].Type)
		assert.Equal(t, "https://schema.org/Product", out[0].Data["@type"])
		assert.Equal(t, "Espressor automat", out[0].Data["name"])
		assert.Equal(t, "1299.99", out[0].Data["price"])
		assert.Equal(t, "/img/espressor.jpg", out[0].Data["image"])
		assert.Equal(t, "/p/espressor", out[0].Data["url"])
	})

	t.Run("repeated itemprop folds into an array", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div itemscope>
  <img itemprop="image" src="/a.jpg">
  <img itemprop="image" src="/b.jpg">
  <img itemprop="image" src="/c.jpg">
</div>
</body></html>`

		ext := goquery.NewSchemaExtractor()
		out, err := ext.ExtractSchema(page(html))

		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, []any{"/a.jpg", "/b.jpg", "/c.jpg"}, out[0].Data["image"])
	})
}

func TestSchemaExtractor_RDFa(t *testing.T) {
	t.Parallel()

	t.Run("reads property content pairs under typeof", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div typeof="schema:Product">
  <span property="schema:name">Boxa portabila</span>
  <meta property="schema:price" content="199">
</div>
</body></html>`

		ext := goquery.NewSchemaExtractor()
		out, err := ext.ExtractSchema(page(html))

		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, pagelens.SchemaRDFa, out[0].Type)
		assert.Equal(t, "Boxa portabila", out[0].Data["schema:name"])
		assert.Equal(t, "199", out[0].Data["schema:price"])
	})

	t.Run("typeof without properties emits nothing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div typeof="schema:Thing"></div></body></html>`

		ext := goquery.NewSchemaExtractor()
		out, err := ext.ExtractSchema(page(html))

		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
