package goquery_test

import (
	"errors"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/goquery"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure ArticleDetector implements pagelens.ArticleDetector at compile time.
var _ pagelens.ArticleDetector = (*goquery.ArticleDetector)(nil)

func TestArticleDetector_DetectArticles(t *testing.T) {
	t.Parallel()

	t.Run("extracts from an article element", func(t *testing.T) {
		t.Parallel()

		p := &pagelens.Page{
			URL: "https://example.com/blog/ghid",
			HTML: `<html><body>
<article>
  <h1>Ghid complet pentru alegerea unui laptop</h1>
  <span class="author">Ana Popescu</span>
  <time datetime="2024-03-15T10:00:00Z">15 martie 2024</time>
  <div class="entry-content">
    <p>Alegerea unui laptop potrivit depinde de buget si de felul in care il folosesti zi de zi.</p>
    <p>In acest ghid trecem prin procesor, memorie, stocare si ecran, cu recomandari pentru fiecare.</p>
  </div>
  <div class="tags"><a>laptopuri</a><a>ghiduri</a></div>
</article>
</body></html>`,
		}

		d := goquery.NewArticleDetector(nil, nil)
		articles, err := d.DetectArticles(p)

		require.NoError(t, err)
		require.Len(t, articles, 1)
		a := articles[0]
		assert.Equal(t, "Ghid complet pentru alegerea unui laptop", a.Title)
		assert.Equal(t, "Ana Popescu", a.Author)
		assert.Equal(t, goquery.SourceArticle, a.Source)
		assert.Equal(t, 0.8, a.ConfidenceScore)
		assert.Equal(t, []string{"laptopuri", "ghiduri"}, a.Tags)
		assert.Equal(t, "https://example.com/blog/ghid", a.URL)
		assert.NotEmpty(t, a.ID)
		assert.Positive(t, a.WordCount)
		assert.Positive(t, a.ReadingTime)
		require.NotNil(t, a.PublishedAt)
		assert.Equal(t, 2024, a.PublishedAt.Year())
	})

	t.Run("candidates without content are discarded", func(t *testing.T) {
		t.Parallel()

		p := &pagelens.Page{
			URL:  "https://example.com",
			HTML: `<html><body><article><h1>Doar un titlu</h1></article></body></html>`,
		}

		d := goquery.NewArticleDetector(nil, nil)
		articles, err := d.DetectArticles(p)

		require.NoError(t, err)
		assert.Empty(t, articles)
	})

	t.Run("falls back to the boilerplate extractor", func(t *testing.T) {
		t.Parallel()

		p := &pagelens.Page{
			URL:  "https://example.com/news",
			HTML: `<html><body><div><p>No recognizable article container anywhere.</p></div></body></html>`,
		}

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*pagelens.ExtractResult, error) {
				return &pagelens.ExtractResult{
					Title:       "Recovered headline",
					Author:      "Redactia",
					PublishedAt: "2024-06-01",
					ContentHTML: "<p>The recovered body of the page after boilerplate removal.</p>",
				}, nil
			},
		}

		d := goquery.NewArticleDetector(extractor, nil)
		articles, err := d.DetectArticles(p)

		require.NoError(t, err)
		require.Len(t, articles, 1)
		a := articles[0]
		assert.Equal(t, "Recovered headline", a.Title)
		assert.Equal(t, "Redactia", a.Author)
		assert.Equal(t, goquery.SourceArticleFallback, a.Source)
		assert.Contains(t, a.Content, "recovered body")
		require.NotNil(t, a.PublishedAt)
	})

	t.Run("fallback extractor errors are swallowed", func(t *testing.T) {
		t.Parallel()

		p := &pagelens.Page{
			URL:  "https://example.com",
			HTML: `<html><body><p>nothing</p></body></html>`,
		}

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*pagelens.ExtractResult, error) {
				return nil, errors.New("extractor down")
			},
		}

		d := goquery.NewArticleDetector(extractor, nil)
		articles, err := d.DetectArticles(p)

		require.NoError(t, err)
		assert.Empty(t, articles)
	})

	t.Run("renders markdown through the converter", func(t *testing.T) {
		t.Parallel()

		p := &pagelens.Page{
			URL: "https://example.com/blog",
			HTML: `<html><body>
<article>
  <h1>Un titlu suficient de lung</h1>
  <div class="entry-content"><p>Un paragraf cu <strong>accente</strong> pentru corpul articolului nostru.</p></div>
</article>
</body></html>`,
		}

		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "Un paragraf cu **accente** pentru corpul articolului nostru.", nil
			},
		}

		d := goquery.NewArticleDetector(nil, converter)
		articles, err := d.DetectArticles(p)

		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Contains(t, articles[0].ContentMarkdown, "**accente**")
	})
}
