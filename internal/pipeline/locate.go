package pipeline

import (
	"fmt"
	"strings"

	"quotebridge/internal"
)

// MarkerColumn identifies the one report layout family this system accepts.
// The real data table is anchored by content, not by row offset, because
// vendors prepend a variable number of banner and disclaimer rows.
const MarkerColumn = "Parent Quote Name"

// LocateHeader scans the grid top to bottom and returns the first row whose
// cells contain the marker text (case-insensitive substring). That row's
// cells become the table's column names.
func LocateHeader(grid internal.RawGrid, marker string) (internal.HeaderAnchor, error) {
	needle := strings.ToLower(marker)
	for i, row := range grid {
		if !rowContains(row, needle) {
			continue
		}
		names := make([]string, len(row))
		for j, cell := range row {
			names[j] = strings.TrimSpace(cell)
		}
		return internal.HeaderAnchor{RowIndex: i, ColumnNames: names}, nil
	}
	return internal.HeaderAnchor{}, fmt.Errorf("%w: %q", ErrHeaderNotFound, marker)
}

func rowContains(row []string, needle string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), needle) {
			return true
		}
	}
	return false
}
