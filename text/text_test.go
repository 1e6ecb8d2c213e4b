package text_test

import (
	"strings"
	"testing"

	"github.com/pagelens/pagelens/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFleschReadingEase(t *testing.T) {
	t.Parallel()

	t.Run("empty text scores zero", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0.0, text.FleschReadingEase(""))
	})

	t.Run("simple text scores higher than complex text", func(t *testing.T) {
		t.Parallel()

		simple := "The cat sat. The dog ran. We ate food. It was good."
		complex := "Notwithstanding considerable organizational idiosyncrasies, the interdepartmental communication infrastructure demonstrated extraordinary administrative sophistication throughout implementation."

		assert.Greater(t, text.FleschReadingEase(simple), text.FleschReadingEase(complex))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		s := "Products are listed with prices. Each one can be bought online."
		assert.Equal(t, text.FleschReadingEase(s), text.FleschReadingEase(s))
	})
}

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	t.Run("splits on terminal punctuation", func(t *testing.T) {
		t.Parallel()

		got := text.SplitSentences("First one. Second one! Third one? Fourth.")

		assert.Equal(t, []string{"First one", "Second one", "Third one", "Fourth"}, got)
	})

	t.Run("drops empty fragments", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, text.SplitSentences("... !!! ???"))
	})
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	t.Run("ranks by frequency", func(t *testing.T) {
		t.Parallel()

		s := "laptop laptop laptop monitor monitor tastatura"

		got := text.Keywords(s, 3)

		require.Len(t, got, 3)
		assert.Equal(t, "laptop", got[0])
		assert.Equal(t, "monitor", got[1])
	})

	t.Run("ignores short words", func(t *testing.T) {
		t.Parallel()

		got := text.Keywords("the and cat toy for was product product", 10)

		assert.NotContains(t, got, "the")
		assert.NotContains(t, got, "and")
		assert.NotContains(t, got, "cat")
		assert.Contains(t, got, "product")
	})

	t.Run("lowercases and strips punctuation", func(t *testing.T) {
		t.Parallel()

		got := text.Keywords("Laptop, LAPTOP! (laptop)", 5)

		assert.Equal(t, []string{"laptop"}, got)
	})

	t.Run("caps the result at n", func(t *testing.T) {
		t.Parallel()

		words := make([]string, 30)
		for i := range words {
			words[i] = strings.Repeat(string(rune('a'+i%26)), 5)
		}

		got := text.Keywords(strings.Join(words, " "), 20)

		assert.LessOrEqual(t, len(got), 20)
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, text.Keywords("", 20))
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("short text is returned whole", func(t *testing.T) {
		t.Parallel()

		got := text.Summarize("Only one sentence here.", 3)

		assert.Equal(t, "Only one sentence here.", got)
	})

	t.Run("long text is reduced to k sentences", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		for i := 0; i < 20; i++ {
			sb.WriteString("This sentence number carries about ten words of filler content total. ")
		}

		got := text.Summarize(sb.String(), 3)

		assert.NotEmpty(t, got)
		assert.Len(t, text.SplitSentences(got), 3)
	})

	t.Run("prefers sentences with importance markers", func(t *testing.T) {
		t.Parallel()

		s := "Filler words go here. More filler words now. Extra filler words too. " +
			"The key conclusion is that the result matters most for everyone involved today. " +
			"Plain filler words again. Closing filler words end."

		got := text.Summarize(s, 2)

		assert.Contains(t, got, "key conclusion")
	})

	t.Run("empty text yields empty summary", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", text.Summarize("", 3))
	})
}
