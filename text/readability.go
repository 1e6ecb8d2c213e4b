// Package text provides the text processing shared by the detectors:
// readability scoring, keyword extraction, and extractive summarization.
// Everything here is pure and operates on plain strings.
package text

import (
	"regexp"
	"strings"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+\s`)

// FleschReadingEase computes the Flesch Reading Ease score of the text.
// Syllables are approximated by vowel-cluster counting with a correction
// for silent trailing e. Returns 0 for empty input.
func FleschReadingEase(s string) float64 {
	sentences := SplitSentences(s)
	words := strings.Fields(s)
	if len(sentences) == 0 || len(words) == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(len(sentences))
	syllablesPerWord := float64(syllables) / float64(len(words))
	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
}

// SplitSentences splits text on sentence-ending punctuation, dropping
// empty fragments.
func SplitSentences(s string) []string {
	parts := sentenceSplitRe.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(p, ".!?"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// countSyllables approximates syllables as vowel clusters, with a silent
// trailing e correction. Every word counts at least one syllable.
func countSyllables(word string) int {
	word = strings.ToLower(word)

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'ă', 'â', 'î', 'é', 'è', 'á', 'ó', 'ú':
		return true
	}
	return false
}
