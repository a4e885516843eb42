package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/soundprediction/graphgen/pkg/types"
)

// RelatedToPredicate is the fallback predicate linking co-occurring entities.
const RelatedToPredicate = "related_to"

// gap words that never carry the relation by themselves.
var gapStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "has": {}, "had": {}, "have": {},
	"will": {}, "would": {}, "can": {}, "could": {}, "may": {}, "might": {},
	"to": {}, "and": {}, "or": {}, "but": {}, "that": {}, "which": {},
	"who": {}, "also": {}, "then": {}, "now": {}, "not": {}, "its": {},
	"their": {}, "his": {}, "her": {}, "in": {}, "on": {}, "at": {},
	"by": {}, "with": {}, "for": {}, "from": {}, "as": {},
}

var wordToken = regexp.MustCompile(`[a-zA-Z'_-]+`)

// HeuristicRelationExtractor derives triplets from entity pairs and the text
// between them. It applies three strategies in order:
//
//  1. "X of Y" when two entities are separated by the word "of";
//  2. subject-verb-object when the gap between two entities contains exactly
//     one content word, taken as the predicate;
//  3. sequential "related_to" links between adjacent entities as a fallback,
//     so sentences with two or more entities always contribute structure.
//
// Output is deduplicated preserving first-occurrence order.
type HeuristicRelationExtractor struct {
	entities EntityExtractor
}

// NewHeuristicRelationExtractor creates a relation extractor over the given
// entity extractor.
func NewHeuristicRelationExtractor(entities EntityExtractor) *HeuristicRelationExtractor {
	return &HeuristicRelationExtractor{entities: entities}
}

// Relations extracts triplets from one sentence.
func (r *HeuristicRelationExtractor) Relations(ctx context.Context, sentence string) ([]types.Triplet, error) {
	entities, err := r.entities.Entities(ctx, sentence)
	if err != nil {
		return nil, fmt.Errorf("entity extraction failed: %w", err)
	}
	if len(entities) < 2 {
		return nil, nil
	}

	var relations []types.Triplet

	for i := 0; i < len(entities)-1; i++ {
		left, right := entities[i], entities[i+1]
		if left.End > right.Start || right.Start > len(sentence) {
			continue
		}
		gap := sentence[left.End:right.Start]

		if pred, ok := gapPredicate(gap); ok {
			relations = append(relations, types.Triplet{
				Subject:   left.Text,
				Predicate: pred,
				Object:    right.Text,
			})
		}
	}

	// Fallback: link adjacent entities so every multi-entity sentence
	// contributes at least co-occurrence structure.
	for i := 0; i < len(entities)-1; i++ {
		relations = append(relations, types.Triplet{
			Subject:   entities[i].Text,
			Predicate: RelatedToPredicate,
			Object:    entities[i+1].Text,
		})
	}

	return types.DedupeTriplets(relations), nil
}

// Close closes the underlying entity extractor.
func (r *HeuristicRelationExtractor) Close() error {
	return r.entities.Close()
}

// gapPredicate inspects the text between two entities and decides whether it
// expresses a relation. "of" wins outright; otherwise the gap must reduce to
// a single content word, which becomes the predicate.
func gapPredicate(gap string) (string, bool) {
	words := wordToken.FindAllString(strings.ToLower(gap), -1)
	if len(words) == 0 {
		return "", false
	}
	if len(words) == 1 && words[0] == "of" {
		return "of", true
	}

	var content []string
	for _, w := range words {
		if _, stop := gapStopwords[w]; stop {
			continue
		}
		if w == "of" {
			continue
		}
		content = append(content, w)
	}
	if len(content) != 1 {
		return "", false
	}
	return content[0], true
}
