package engine_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/engine"
	"github.com/pagelens/pagelens/goquery"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEngine wires an engine with the real detection components and a
// fetcher that always serves the given HTML.
func newEngine(html string) *engine.Engine {
	return &engine.Engine{
		Config: pagelens.DefaultConfig(),
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return html, nil
			},
		},
		Schema:   goquery.NewSchemaExtractor(),
		Platform: goquery.NewPlatformDetector(),
		Strategies: []pagelens.ProductStrategy{
			goquery.NewSchemaStrategy(),
			goquery.NewPlatformStrategy(),
			goquery.NewSemanticStrategy(),
			goquery.NewURLStrategy(),
			goquery.NewVisualStrategy(),
			goquery.NewTextStrategy(),
			goquery.NewLinkStrategy(),
			goquery.NewImageStrategy(),
		},
		Articles: goquery.NewArticleDetector(nil, nil),
		Contacts: goquery.NewContactExtractor(),
		Analyzer: goquery.NewPageAnalyzer(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

const productPage = `<html><head>
<title>Cablu HDMI 2m - Magazin</title>
<meta name="description" content="Cablu HDMI de doi metri cu livrare rapida oriunde in tara.">
<script type="application/ld+json">{"@type":"Product","name":"Cablu HDMI 2m","brand":{"name":"Acme"},"offers":{"price":"29.99","priceCurrency":"RON","availability":"https://schema.org/InStock"}}</script>
</head><body>
<h1>Cablu HDMI 2m</h1>
<p>Acest cablu HDMI de doi metri este potrivit pentru televizoare si monitoare moderne, cu transfer rapid al imaginii.</p>
</body></html>`

func TestEngine_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("extracts a structured-data product end to end", func(t *testing.T) {
		t.Parallel()

		e := newEngine(productPage)
		result, err := e.Scrape(context.Background(), &pagelens.Request{URL: "https://example.com/produs/cablu"})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Cablu HDMI 2m - Magazin", result.Title)
		assert.GreaterOrEqual(t, result.ProcessingTime, int64(0))

		require.NotEmpty(t, result.Products)
		got := result.Products[0]
		assert.Equal(t, "Cablu HDMI 2m", got.Name)
		assert.Equal(t, "29.99", got.Price)
		assert.Equal(t, "RON", got.Currency)
		assert.Equal(t, 0.95, got.ConfidenceScore)

		require.NotEmpty(t, result.StructuredData)
		assert.Equal(t, pagelens.SchemaJSONLD, result.StructuredData[0].Type)
	})

	t.Run("rejects documents too small to parse", func(t *testing.T) {
		t.Parallel()

		e := newEngine("<html></html>")
		_, err := e.Scrape(context.Background(), &pagelens.Request{URL: "https://example.com"})

		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
	})

	t.Run("rejects requests without a URL", func(t *testing.T) {
		t.Parallel()

		e := newEngine(productPage)
		_, err := e.Scrape(context.Background(), &pagelens.Request{})

		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
	})

	t.Run("detects the platform and uses its selectors", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<title>Shopify store</title>
<link href="https://cdn.shopify.com/s/files/theme.css" rel="stylesheet">
</head><body>
<div class="shopify-section">
  <div class="product-form">
    <h2>Tricou bumbac organic</h2>
    <span class="price">79,99 lei</span>
    <img src="/img/tricou.jpg">
  </div>
</div>
<p>Magazin online construit pe o platforma gazduita, cu plati securizate si livrare rapida.</p>
</body></html>`

		e := newEngine(html)
		result, err := e.Scrape(context.Background(), &pagelens.Request{URL: "https://store.example.com"})

		require.NoError(t, err)
		assert.Equal(t, pagelens.PlatformShopify, result.Platform)

		require.NotEmpty(t, result.Products)
		assert.Equal(t, "Tricou bumbac organic", result.Products[0].Name)
	})

	t.Run("two runs over the same page agree", func(t *testing.T) {
		t.Parallel()

		e := newEngine(productPage)
		req := &pagelens.Request{URL: "https://example.com/produs/cablu"}

		first, err := e.Scrape(context.Background(), req)
		require.NoError(t, err)
		second, err := e.Scrape(context.Background(), req)
		require.NoError(t, err)

		require.Equal(t, len(first.Products), len(second.Products))
		for i := range first.Products {
			assert.Equal(t, first.Products[i].Name, second.Products[i].Name)
			assert.Equal(t, first.Products[i].Price, second.Products[i].Price)
			assert.Equal(t, first.Products[i].ConfidenceScore, second.Products[i].ConfidenceScore)
		}
		assert.Equal(t, first.Title, second.Title)
		assert.Equal(t, first.Language, second.Language)
	})

	t.Run("target types gate what is extracted", func(t *testing.T) {
		t.Parallel()

		e := newEngine(productPage)
		result, err := e.Scrape(context.Background(), &pagelens.Request{
			URL:         "https://example.com",
			TargetTypes: []string{pagelens.TargetArticles},
		})

		require.NoError(t, err)
		assert.Empty(t, result.Products)
		assert.NotNil(t, result.Products)
	})

	t.Run("comprehensive mode fills every snapshot", func(t *testing.T) {
		t.Parallel()

		e := newEngine(productPage)
		result, err := e.Scrape(context.Background(), &pagelens.Request{
			URL:  "https://example.com",
			Mode: pagelens.ModeComprehensive,
		})

		require.NoError(t, err)
		assert.NotNil(t, result.SEOData)
		assert.NotNil(t, result.PerformanceMetrics)
		assert.NotNil(t, result.SecurityScan)
		require.NotNil(t, result.ContentQuality)
		assert.NotEmpty(t, result.ContentQuality.Keywords)
		assert.NotEmpty(t, result.ContentQuality.Summary)
	})

	t.Run("basic mode leaves the snapshots empty", func(t *testing.T) {
		t.Parallel()

		e := newEngine(productPage)
		result, err := e.Scrape(context.Background(), &pagelens.Request{URL: "https://example.com"})

		require.NoError(t, err)
		assert.Nil(t, result.SEOData)
		assert.Nil(t, result.PerformanceMetrics)
		assert.Nil(t, result.SecurityScan)
		assert.Nil(t, result.ContentQuality)
	})

	t.Run("serves cached pages without fetching", func(t *testing.T) {
		t.Parallel()

		e := newEngine(productPage)
		e.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Fatal("fetcher must not be called on a cache hit")
				return "", nil
			},
		}
		e.Cache = &mock.PageCache{
			GetFn: func(ctx context.Context, url string) (string, bool, error) {
				return productPage, true, nil
			},
		}

		result, err := e.Scrape(context.Background(), &pagelens.Request{URL: "https://example.com"})

		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("stores fetched pages in the cache", func(t *testing.T) {
		t.Parallel()

		var putURL, putHTML string
		e := newEngine(productPage)
		e.Cache = &mock.PageCache{
			GetFn: func(ctx context.Context, url string) (string, bool, error) {
				return "", false, nil
			},
			PutFn: func(ctx context.Context, url, html string) error {
				putURL, putHTML = url, html
				return nil
			},
		}

		_, err := e.Scrape(context.Background(), &pagelens.Request{URL: "https://example.com"})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", putURL)
		assert.Equal(t, productPage, putHTML)
	})

	t.Run("enhancer fills gaps in enhanced modes", func(t *testing.T) {
		t.Parallel()

		e := newEngine(productPage)
		e.Enhancer = &mock.Enhancer{
			EnhanceFn: func(ctx context.Context, pageText string, products []*pagelens.Product) ([]*pagelens.Product, error) {
				for _, p := range products {
					p.Category = "Cabluri"
				}
				return products, nil
			},
		}

		result, err := e.Scrape(context.Background(), &pagelens.Request{
			URL:  "https://example.com",
			Mode: pagelens.ModeAIEnhanced,
		})

		require.NoError(t, err)
		require.NotEmpty(t, result.Products)
		assert.Equal(t, "Cabluri", result.Products[0].Category)
	})

	t.Run("enhancer failures degrade to the raw products", func(t *testing.T) {
		t.Parallel()

		e := newEngine(productPage)
		e.Enhancer = &mock.Enhancer{
			EnhanceFn: func(ctx context.Context, pageText string, products []*pagelens.Product) ([]*pagelens.Product, error) {
				return nil, pagelens.Errorf(pagelens.EUNAVAILABLE, "model unavailable")
			},
		}

		result, err := e.Scrape(context.Background(), &pagelens.Request{
			URL:  "https://example.com",
			Mode: pagelens.ModeAIEnhanced,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Products)
	})

	t.Run("enhancer is skipped in basic mode", func(t *testing.T) {
		t.Parallel()

		e := newEngine(productPage)
		e.Enhancer = &mock.Enhancer{
			EnhanceFn: func(ctx context.Context, pageText string, products []*pagelens.Product) ([]*pagelens.Product, error) {
				t.Fatal("enhancer must not run in basic mode")
				return nil, nil
			},
		}

		_, err := e.Scrape(context.Background(), &pagelens.Request{URL: "https://example.com"})

		require.NoError(t, err)
	})
}
