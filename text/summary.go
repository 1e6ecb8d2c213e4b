package text

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultSummarySentences is the number of sentences Summarize keeps
// unless the caller asks otherwise.
const DefaultSummarySentences = 3

// importanceRe marks sentences that carry signal words worth keeping in a
// summary.
var importanceRe = regexp.MustCompile(`(?i)\b(important|esențial|esential|principal|concluzie|rezultat|significant|essential|key|main|conclusion|result|overall|summary)\b`)

// Summarize produces an extractive summary: sentences are scored by
// position (openers and closers score higher), preferred length (10-30
// words), and the presence of importance markers; the top k sentences are
// returned in score order joined with periods.
func Summarize(s string, k int) string {
	if k <= 0 {
		k = DefaultSummarySentences
	}

	sentences := SplitSentences(s)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= k {
		return strings.Join(sentences, ". ") + "."
	}

	type scored struct {
		text  string
		score float64
	}

	ranked := make([]scored, 0, len(sentences))
	for i, sentence := range sentences {
		score := 0.0

		switch {
		case i == 0 || i == len(sentences)-1:
			score += 3
		case i < len(sentences)/4:
			score += 2
		}

		words := len(strings.Fields(sentence))
		if words >= 10 && words <= 30 {
			score += 2
		} else if words >= 5 {
			score++
		}

		if importanceRe.MatchString(sentence) {
			score += 2
		}

		ranked = append(ranked, scored{text: sentence, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	parts := make([]string, 0, k)
	for _, r := range ranked[:k] {
		parts = append(parts, r.text)
	}
	return strings.Join(parts, ". ") + "."
}
