package enrich

import (
	"slices"

	"github.com/hotelrev/revman/internal/sheets"
)

// ChangeSummary reports which managed columns differ between the
// authoritative sheet copy and the freshly enriched table. The write-back set
// is exactly the differing columns.
type ChangeSummary struct {
	Changed bool
	Columns []string
}

// DetectChanges compares the managed columns of the authoritative copy
// against the updated in-memory table, column by column, as string sequences.
// If the authoritative copy is empty or lacks any managed column the shapes
// are incompatible: detection is skipped and nothing is reported changed.
func DetectChanges(authoritative, updated *sheets.Table, managed []string) ChangeSummary {
	if authoritative == nil || authoritative.Len() == 0 {
		return ChangeSummary{}
	}
	for _, col := range managed {
		if !authoritative.HasColumn(col) {
			return ChangeSummary{}
		}
	}

	var summary ChangeSummary
	for _, col := range managed {
		if !slices.Equal(authoritative.Column(col), updated.Column(col)) {
			summary.Changed = true
			summary.Columns = append(summary.Columns, col)
		}
	}
	return summary
}
