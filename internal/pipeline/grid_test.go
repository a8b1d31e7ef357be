package pipeline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func mkXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	if _, err := f.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReadGridXLSX(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"Parent Quote Name", "Quantity", "List Price"},
		{"XQ-1001", 3, "$100.00"},
		{"XQ-1002"},
	})
	grid, err := ReadGrid("export.xlsx", blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 3 {
		t.Fatalf("rows = %d", len(grid))
	}
	for i, row := range grid {
		if len(row) != 3 {
			t.Fatalf("row %d not padded: len=%d", i, len(row))
		}
	}
	if grid[1][0] != "XQ-1001" || grid[1][1] != "3" {
		t.Fatalf("row 1 = %v", grid[1])
	}
}

func TestReadGridSemicolonDelimited(t *testing.T) {
	blob := []byte("Parent Quote Name;Quantity;List Price\nXQ-1001;3;$100.00\n")
	grid, err := ReadGrid("export.csv", blob)
	if err != nil {
		t.Fatal(err)
	}
	if grid[0][0] != "Parent Quote Name" || grid[1][2] != "$100.00" {
		t.Fatalf("grid = %v", grid)
	}
}

func TestReadGridCommaDelimited(t *testing.T) {
	blob := []byte("Parent Quote Name,Quantity\nXQ-1,2\n")
	grid, err := ReadGrid("export.txt", blob)
	if err != nil {
		t.Fatal(err)
	}
	if grid[1][1] != "2" {
		t.Fatalf("grid = %v", grid)
	}
}

func TestReadGridUnreadable(t *testing.T) {
	_, err := ReadGrid("export.xlsx", []byte("this is not a workbook"))
	if !errors.Is(err, ErrFileUnreadable) {
		t.Fatalf("err = %v, want ErrFileUnreadable", err)
	}
}
