// Package types defines the data structures shared across graphgen:
// entity mentions, relation triplets, and the extraction results that flow
// between the extraction, deduplication, and aggregation stages.
package types
