// Package export serializes finished graphs to files: node-link JSON,
// triplet CSV, and Parquet. Exporters consume the graph read-only; nothing
// here feeds back into aggregation.
package export
