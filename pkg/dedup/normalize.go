package dedup

import (
	"strings"

	"github.com/soundprediction/graphgen/pkg/types"
)

// SubstringNormalizer maps mentions onto a representative list by
// case-insensitive substring containment, first match in list order winning.
//
// This is the legacy normalization policy. It is ambiguous when several
// representatives substring-overlap a mention ("US" matches both "US Navy"
// and "US Army", and the list order decides), and it scans the whole list per
// mention. Prefer Result.Canonical, which is an exact lookup built during
// clustering. This type exists for callers that bring representatives from
// outside a deduplication pass.
type SubstringNormalizer struct {
	representatives []string
	lowered         []string
}

// NewSubstringNormalizer creates a normalizer over the given representative
// list. List order is significant: the first matching representative wins.
func NewSubstringNormalizer(representatives []string) *SubstringNormalizer {
	lowered := make([]string, len(representatives))
	for i, r := range representatives {
		lowered[i] = strings.ToLower(r)
	}
	return &SubstringNormalizer{
		representatives: representatives,
		lowered:         lowered,
	}
}

// Canonical returns the first representative that contains the mention or is
// contained in it, comparing case-insensitively. Unmatched or empty mentions
// are returned unchanged.
func (n *SubstringNormalizer) Canonical(mention string) string {
	if mention == "" {
		return mention
	}
	lower := strings.ToLower(mention)
	for i, rep := range n.lowered {
		if strings.Contains(rep, lower) || strings.Contains(lower, rep) {
			return n.representatives[i]
		}
	}
	return mention
}

// NormalizeTriplets rewrites triplet subjects and objects through Canonical.
func (n *SubstringNormalizer) NormalizeTriplets(triplets []types.Triplet) []types.Triplet {
	out := make([]types.Triplet, len(triplets))
	for i, t := range triplets {
		out[i] = types.Triplet{
			Subject:   n.Canonical(t.Subject),
			Predicate: t.Predicate,
			Object:    n.Canonical(t.Object),
		}
	}
	return out
}
