package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"quotebridge/internal"
)

// ReadGrid reads an uploaded portal export into a RawGrid without any header
// interpretation. The portal emits both .xlsx workbooks and ";"-delimited
// text, so the format is sniffed from the file name.
func ReadGrid(filename string, blob []byte) (internal.RawGrid, error) {
	var grid internal.RawGrid
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		grid, err = readXLSXGrid(blob)
	default:
		grid, err = readDelimitedGrid(blob)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileUnreadable, filename, err)
	}
	return padRectangular(grid), nil
}

func readXLSXGrid(blob []byte) (internal.RawGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	grid := make(internal.RawGrid, 0, len(rows))
	for _, row := range rows {
		grid = append(grid, append([]string(nil), row...))
	}
	return grid, nil
}

func readDelimitedGrid(blob []byte) (internal.RawGrid, error) {
	reader := csv.NewReader(bytes.NewReader(blob))
	reader.Comma = sniffDelimiter(blob)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	grid := make(internal.RawGrid, 0, len(rows))
	for _, row := range rows {
		grid = append(grid, append([]string(nil), row...))
	}
	return grid, nil
}

// The portal's delimited exports use ";"; hand-edited copies occasionally
// come back comma-separated.
func sniffDelimiter(blob []byte) rune {
	head := blob
	if idx := bytes.IndexByte(head, '\n'); idx >= 0 {
		head = head[:idx]
	}
	if bytes.Count(head, []byte(";")) >= bytes.Count(head, []byte(",")) && bytes.Contains(head, []byte(";")) {
		return ';'
	}
	return ','
}

func padRectangular(grid internal.RawGrid) internal.RawGrid {
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range grid {
		for len(row) < width {
			row = append(row, "")
		}
		grid[i] = row
	}
	return grid
}
