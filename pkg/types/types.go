package types

import "strings"

// Entity represents a single entity mention extracted from text, together
// with the label assigned by the extractor and the character span of the
// mention in its source sentence.
type Entity struct {
	Text  string  `json:"text"`
	Label string  `json:"label,omitempty"`
	Start int     `json:"start,omitempty"`
	End   int     `json:"end,omitempty"`
	Score float64 `json:"score,omitempty"`
}

// Triplet is a (subject, predicate, object) relation fact.
type Triplet struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// Valid reports whether the triplet has both a subject and an object.
// Triplets failing this check are skipped by the aggregator.
func (t Triplet) Valid() bool {
	return strings.TrimSpace(t.Subject) != "" && strings.TrimSpace(t.Object) != ""
}

// DedupeTriplets removes exact duplicate triplets while preserving the
// order of first occurrence.
func DedupeTriplets(triplets []Triplet) []Triplet {
	seen := make(map[Triplet]struct{}, len(triplets))
	out := make([]Triplet, 0, len(triplets))
	for _, t := range triplets {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// DedupeStrings removes exact duplicate strings while preserving the order
// of first occurrence. Mention lists are passed through this before
// similarity-based deduplication so each surface form is clustered once.
func DedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
