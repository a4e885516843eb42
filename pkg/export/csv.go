package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/soundprediction/graphgen/pkg/types"
)

// WriteTripletsCSV writes triplets as a CSV with a subject,predicate,object
// header, in input order.
func WriteTripletsCSV(w io.Writer, triplets []types.Triplet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"subject", "predicate", "object"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, t := range triplets {
		if err := cw.Write([]string{t.Subject, t.Predicate, t.Object}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
