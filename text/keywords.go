package text

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultKeywordCount is the number of keywords Keywords returns unless
// the caller asks for more or fewer.
const DefaultKeywordCount = 20

// minKeywordLen filters out short function words before ranking.
const minKeywordLen = 4

var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Keywords returns the top n words of the text ranked by frequency.
// Words are lowercased, punctuation is stripped, and words shorter than
// four characters are ignored. Ties rank alphabetically so the result is
// deterministic.
func Keywords(s string, n int) []string {
	if n <= 0 {
		n = DefaultKeywordCount
	}

	freq := make(map[string]int)
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		if len([]rune(w)) < minKeywordLen {
			continue
		}
		freq[w]++
	}
	if len(freq) == 0 {
		return nil
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}
