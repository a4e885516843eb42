package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/soundprediction/graphgen/pkg/types"
)

// EntityExtractor finds entity mentions in a sentence.
type EntityExtractor interface {
	Entities(ctx context.Context, sentence string) ([]types.Entity, error)
	Close() error
}

// RelationExtractor finds relation triplets in a sentence.
type RelationExtractor interface {
	Relations(ctx context.Context, sentence string) ([]types.Triplet, error)
	Close() error
}

// capitalizedPhrase matches runs of capitalized words, allowing a lowercase
// connective ("of", "the", "de") in the middle of a name.
var capitalizedPhrase = regexp.MustCompile(`\b[A-Z][\w'.-]*(?:\s+(?:of|the|de|van|von)\s+[A-Z][\w'.-]*|\s+[A-Z][\w'.-]*)*`)

// words that start sentences or phrases without naming anything.
var entityStopwords = map[string]struct{}{
	"The": {}, "A": {}, "An": {}, "This": {}, "That": {}, "These": {},
	"Those": {}, "It": {}, "He": {}, "She": {}, "They": {}, "We": {},
	"I": {}, "You": {}, "But": {}, "And": {}, "Or": {}, "If": {},
	"When": {}, "While": {}, "After": {}, "Before": {}, "However": {},
	"There": {}, "Here": {}, "Its": {}, "His": {}, "Her": {}, "Their": {},
	"In": {}, "On": {}, "At": {}, "For": {}, "With": {}, "From": {},
	"To": {}, "By": {}, "As": {}, "Yes": {}, "No": {}, "Not": {},
}

// HeuristicEntityExtractor extracts capitalized phrases as entity mentions.
// It is the zero-dependency fallback for when no NER model is configured;
// precision is traded for not needing a model at all.
type HeuristicEntityExtractor struct{}

// NewHeuristicEntityExtractor creates a heuristic extractor.
func NewHeuristicEntityExtractor() *HeuristicEntityExtractor {
	return &HeuristicEntityExtractor{}
}

// Entities returns capitalized phrases with their character spans, in
// sentence order. Lone stopwords and single letters are filtered out.
func (e *HeuristicEntityExtractor) Entities(ctx context.Context, sentence string) ([]types.Entity, error) {
	var entities []types.Entity
	for _, loc := range capitalizedPhrase.FindAllStringIndex(sentence, -1) {
		phrase := strings.TrimSpace(sentence[loc[0]:loc[1]])
		mention := trimStopwordPrefix(phrase)
		if mention == "" || len(mention) < 2 {
			continue
		}
		if _, stop := entityStopwords[mention]; stop {
			continue
		}
		// Trimming a prefix shifts the span start.
		start := loc[0] + strings.Index(sentence[loc[0]:loc[1]], mention)
		entities = append(entities, types.Entity{
			Text:  mention,
			Label: "ENTITY",
			Start: start,
			End:   start + len(mention),
		})
	}
	return entities, nil
}

// Close implements EntityExtractor.
func (e *HeuristicEntityExtractor) Close() error { return nil }

// trimStopwordPrefix drops leading stopwords such as the sentence-initial
// "The" in "The Acme Corporation".
func trimStopwordPrefix(mention string) string {
	for {
		first, rest, found := strings.Cut(mention, " ")
		if !found {
			if _, stop := entityStopwords[mention]; stop {
				return ""
			}
			return mention
		}
		if _, stop := entityStopwords[first]; !stop {
			return mention
		}
		mention = rest
	}
}

// MentionTexts flattens entities to their text strings, preserving order.
func MentionTexts(entities []types.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Text
	}
	return out
}
