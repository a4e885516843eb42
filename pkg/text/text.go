// Package text provides text cleaning and sentence splitting for the
// extraction pipeline.
package text

import (
	"regexp"
	"strings"
)

var (
	multiNewline  = regexp.MustCompile(`\n{2,}`)
	nonPrintable  = regexp.MustCompile(`[^\x09\x0A\x0D\x20-\x7E]+`)
	runsOfSpaces  = regexp.MustCompile(`[ \t]+`)
	sentenceBreak = regexp.MustCompile(`(?:[.?!])\s+`)
)

// minSentenceLength drops fragments too short to carry a relation.
const minSentenceLength = 4

// Clean normalizes newlines and whitespace and strips non-printable
// characters while keeping common punctuation.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\r", "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	s = nonPrintable.ReplaceAllString(s, " ")
	s = runsOfSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SplitSentences cleans the text and splits it into sentences on end
// punctuation followed by whitespace. Fragments shorter than four characters
// are dropped.
func SplitSentences(s string) []string {
	s = Clean(s)
	if s == "" {
		return nil
	}

	var sentences []string
	start := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(s, -1) {
		// Keep the end punctuation, drop the separating whitespace.
		sentence := strings.TrimSpace(s[start : loc[0]+1])
		if len(sentence) >= minSentenceLength {
			sentences = append(sentences, sentence)
		}
		start = loc[1]
	}
	if last := strings.TrimSpace(s[start:]); len(last) >= minSentenceLength {
		sentences = append(sentences, last)
	}
	return sentences
}
