package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/soundprediction/graphgen/pkg/graph"
	"github.com/soundprediction/graphgen/pkg/types"
)

// ParquetWriter writes graph nodes, edges, and triplets to Parquet files
// under a base directory.
type ParquetWriter struct {
	baseDir string
}

// NewParquetWriter creates the base directory if needed.
func NewParquetWriter(baseDir string) (*ParquetWriter, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", baseDir, err)
	}
	return &ParquetWriter{baseDir: baseDir}, nil
}

// ParquetNode is the Parquet schema for a graph node.
type ParquetNode struct {
	Label string `parquet:"label"`
	Type  string `parquet:"type"`
	RunID string `parquet:"run_id"`
}

// ParquetEdge is the Parquet schema for an aggregated edge. Preds is joined
// with "|" since the consumers of these files are tabular tools.
type ParquetEdge struct {
	Source string `parquet:"source"`
	Target string `parquet:"target"`
	Label  string `parquet:"label"`
	Weight int32  `parquet:"weight"`
	Preds  string `parquet:"preds"`
	RunID  string `parquet:"run_id"`
}

// ParquetTriplet is the Parquet schema for a raw triplet.
type ParquetTriplet struct {
	Subject   string `parquet:"subject"`
	Predicate string `parquet:"predicate"`
	Object    string `parquet:"object"`
	RunID     string `parquet:"run_id"`
}

// WriteGraph writes nodes_<runID>.parquet and edges_<runID>.parquet.
func (w *ParquetWriter) WriteGraph(g *graph.Graph, runID string) error {
	nodes := make([]ParquetNode, 0, g.NumNodes())
	for _, n := range g.Nodes() {
		nodes = append(nodes, ParquetNode{Label: n.Label, Type: n.Type, RunID: runID})
	}

	edges := make([]ParquetEdge, 0, g.NumEdges())
	for _, e := range g.Edges() {
		edges = append(edges, ParquetEdge{
			Source: e.Source,
			Target: e.Target,
			Label:  e.Label,
			Weight: int32(e.Weight),
			Preds:  strings.Join(e.Preds, "|"),
			RunID:  runID,
		})
	}

	nodePath := filepath.Join(w.baseDir, fmt.Sprintf("nodes_%s.parquet", runID))
	if err := parquet.WriteFile(nodePath, nodes); err != nil {
		return fmt.Errorf("failed to write %s: %w", nodePath, err)
	}

	edgePath := filepath.Join(w.baseDir, fmt.Sprintf("edges_%s.parquet", runID))
	if err := parquet.WriteFile(edgePath, edges); err != nil {
		return fmt.Errorf("failed to write %s: %w", edgePath, err)
	}
	return nil
}

// WriteTriplets writes triplets_<runID>.parquet.
func (w *ParquetWriter) WriteTriplets(triplets []types.Triplet, runID string) error {
	rows := make([]ParquetTriplet, 0, len(triplets))
	for _, t := range triplets {
		rows = append(rows, ParquetTriplet{
			Subject:   t.Subject,
			Predicate: t.Predicate,
			Object:    t.Object,
			RunID:     runID,
		})
	}

	path := filepath.Join(w.baseDir, fmt.Sprintf("triplets_%s.parquet", runID))
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
