package goquery_test

import (
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactExtractor_ExtractContacts(t *testing.T) {
	t.Parallel()

	t.Run("collects emails, phones, addresses, and social links", func(t *testing.T) {
		t.Parallel()

		p := &pagelens.Page{
			URL: "https://example.com/contact",
			HTML: `<html><body>
<p>Scrie-ne la contact@example.com sau suna la +40 721 234 567.</p>
<a href="mailto:vanzari@example.com?subject=Oferta">Vanzari</a>
<a href="tel:+40212345678">Call center</a>
<address>Strada Exemplu 10, Bucuresti</address>
<a href="https://facebook.com/examplestore">Facebook</a>
<a href="https://instagram.com/examplestore">Instagram</a>
</body></html>`,
		}

		e := goquery.NewContactExtractor()
		c, err := e.ExtractContacts(p)

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Contains(t, c.Emails, "contact@example.com")
		assert.Contains(t, c.Emails, "vanzari@example.com")
		assert.NotContains(t, c.Emails, "vanzari@example.com?subject=Oferta")
		assert.Contains(t, c.Phones, "+40212345678")
		assert.Contains(t, c.Addresses, "Strada Exemplu 10, Bucuresti")
		assert.Contains(t, c.Social, "https://facebook.com/examplestore")
		assert.Contains(t, c.Social, "https://instagram.com/examplestore")
		assert.Equal(t, goquery.SourceContact, c.Source)
		assert.NotEmpty(t, c.ID)
	})

	t.Run("deduplicates repeated values", func(t *testing.T) {
		t.Parallel()

		p := &pagelens.Page{
			URL: "https://example.com",
			HTML: `<html><body>
<p>office@example.com and again office@example.com</p>
<a href="mailto:office@example.com">Email us</a>
</body></html>`,
		}

		e := goquery.NewContactExtractor()
		c, err := e.ExtractContacts(p)

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, []string{"office@example.com"}, c.Emails)
	})

	t.Run("pages without contacts yield nothing", func(t *testing.T) {
		t.Parallel()

		p := &pagelens.Page{
			URL:  "https://example.com",
			HTML: `<html><body><p>Doar text obisnuit fara date de contact.</p></body></html>`,
		}

		e := goquery.NewContactExtractor()
		c, err := e.ExtractContacts(p)

		require.NoError(t, err)
		assert.Nil(t, c)
	})
}
