package pipeline

import (
	"fmt"
	"strings"

	"quotebridge/internal"
)

// QuotePrefix marks rows that are real sellable quote lines. Everything else
// below the header (totals, disclaimers, blank rows) is dropped.
const QuotePrefix = "XQ-"

// FilterQuoteLines re-slices the grid one row below the anchor, zips each row
// positionally against the column names, and keeps rows whose trimmed marker
// column starts with QuotePrefix. Ordering is preserved for auditability.
//
// A header row that matched the marker by substring but has no column named
// after it is a structurally different report: ErrSchemaMismatch. Zero
// surviving rows usually means the wrong file was uploaded: ErrEmptyResult.
func FilterQuoteLines(grid internal.RawGrid, anchor internal.HeaderAnchor) ([]internal.QuoteLine, error) {
	keyIdx := -1
	for i, name := range anchor.ColumnNames {
		if strings.EqualFold(name, MarkerColumn) {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return nil, fmt.Errorf("%w: no %q column in header row %d", ErrSchemaMismatch, MarkerColumn, anchor.RowIndex)
	}
	keyName := anchor.ColumnNames[keyIdx]

	lines := make([]internal.QuoteLine, 0)
	for i := anchor.RowIndex + 1; i < len(grid); i++ {
		row := grid[i]
		fields := make(map[string]string, len(anchor.ColumnNames))
		for j, name := range anchor.ColumnNames {
			if name == "" {
				continue
			}
			value := ""
			if j < len(row) {
				value = strings.TrimSpace(row[j])
			}
			fields[name] = value
		}
		if !strings.HasPrefix(fields[keyName], QuotePrefix) {
			continue
		}
		lines = append(lines, internal.QuoteLine{RowIndex: i, Fields: fields})
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows with %q prefix below row %d", ErrEmptyResult, QuotePrefix, anchor.RowIndex)
	}
	return lines, nil
}
