package reconcile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	platstrings "casefile/pkg/platform/strings"
)

// BatchResult aggregates one import batch's outcomes. Warnings are deferred
// to end-of-batch so the caller can surface them once, not once per row.
type BatchResult struct {
	BatchID    string   `json:"batch_id"`
	Section    Section  `json:"section"`
	Created    int      `json:"created"`
	Updated    int      `json:"updated"`
	Duplicates int      `json:"duplicates"`
	Errors     int      `json:"errors"`
	RowErrors  []string `json:"row_errors,omitempty"`
	// MissingDetail lists, deduplicated, the ids auto-created without any
	// detail-catalog entry.
	MissingDetail []string `json:"missing_detail,omitempty"`
}

// ImportBatch runs Reconcile over each row in order and aggregates the
// outcomes. Rows with diagnostics count as errors even when parts of the
// row applied.
func (r *Reconciler) ImportBatch(section Section, rows []map[string]string, strategy Strategy) (BatchResult, error) {
	result := BatchResult{BatchID: uuid.NewString(), Section: section}

	var missing []string
	for i, row := range rows {
		outcome, err := r.Reconcile(section, row, strategy)
		if err != nil {
			return BatchResult{}, err
		}
		missing = append(missing, outcome.MissingDetail...)

		switch {
		case len(outcome.Diagnostics) > 0:
			result.Errors++
			for _, d := range outcome.Diagnostics {
				result.RowErrors = append(result.RowErrors, fmt.Sprintf("Row %d: %s", i+1, d))
			}
		case outcome.Created:
			result.Created++
		case outcome.Changed:
			result.Updated++
		default:
			result.Duplicates++
		}
	}
	result.MissingDetail = platstrings.DedupeAndTrim(missing)
	return result, nil
}

// SummaryLines renders the human-readable batch summary.
func (b BatchResult) SummaryLines() []string {
	lines := []string{
		fmt.Sprintf("Import of %s: %d new, %d updated, %d duplicates, %d rows with errors.",
			b.Section, b.Created, b.Updated, b.Duplicates, b.Errors),
	}
	if len(b.MissingDetail) > 0 {
		lines = append(lines, fmt.Sprintf("No catalog detail was found for: %s.",
			strings.Join(b.MissingDetail, ", ")))
	}
	lines = append(lines, b.RowErrors...)
	return lines
}
