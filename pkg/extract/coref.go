package extract

import (
	"context"
	"regexp"
)

var pronounPattern = regexp.MustCompile(`(?i)\b(he|she|they|it|his|her|their|its)\b`)

// ResolvePronouns performs naive coreference resolution: each pronoun is
// replaced with the most recently seen entity mention from the current or any
// earlier sentence. This is a lightweight heuristic to give the relation
// extractor concrete subjects; it knows nothing about gender, number, or
// scope. Sentences without a preceding entity are returned unchanged.
func ResolvePronouns(ctx context.Context, sentences []string, extractor EntityExtractor) ([]string, error) {
	resolved := make([]string, 0, len(sentences))
	lastEntity := ""

	for _, sentence := range sentences {
		entities, err := extractor.Entities(ctx, sentence)
		if err != nil {
			return nil, err
		}
		if len(entities) > 0 {
			lastEntity = entities[len(entities)-1].Text
		}

		if lastEntity == "" {
			resolved = append(resolved, sentence)
			continue
		}
		resolved = append(resolved, pronounPattern.ReplaceAllString(sentence, lastEntity))
	}

	return resolved, nil
}
