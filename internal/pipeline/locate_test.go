package pipeline

import (
	"errors"
	"testing"

	"quotebridge/internal"
)

func TestLocateHeaderSkipsBannerRows(t *testing.T) {
	grid := internal.RawGrid{
		{"ACME Distribution BV"},
		{"Quotation export", ""},
		{"", ""},
		{"Prices subject to change", ""},
		{"", ""},
		{"Parent Quote Name", "Quantity", "List Price"},
		{"XQ-1001", "3", "$100.00"},
	}

	anchor, err := LocateHeader(grid, MarkerColumn)
	if err != nil {
		t.Fatal(err)
	}
	if anchor.RowIndex != 5 {
		t.Fatalf("RowIndex = %d, want 5", anchor.RowIndex)
	}
	if anchor.ColumnNames[0] != "Parent Quote Name" || anchor.ColumnNames[2] != "List Price" {
		t.Fatalf("ColumnNames = %v", anchor.ColumnNames)
	}
}

func TestLocateHeaderReturnsFirstMatch(t *testing.T) {
	grid := internal.RawGrid{
		{"Parent Quote Name", "Quantity"},
		{"XQ-1", "1"},
		{"Disclaimer: the Parent Quote Name column is informational", ""},
	}

	anchor, err := LocateHeader(grid, MarkerColumn)
	if err != nil {
		t.Fatal(err)
	}
	if anchor.RowIndex != 0 {
		t.Fatalf("RowIndex = %d, want first match", anchor.RowIndex)
	}
}

func TestLocateHeaderCaseInsensitiveSubstring(t *testing.T) {
	grid := internal.RawGrid{
		{"pARENT qUOTE nAME (ref)", "Qty"},
	}
	if _, err := LocateHeader(grid, MarkerColumn); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
}

func TestLocateHeaderNotFound(t *testing.T) {
	grid := internal.RawGrid{
		{"Some", "Other"},
		{"Report", "Entirely"},
	}
	_, err := LocateHeader(grid, MarkerColumn)
	if !errors.Is(err, ErrHeaderNotFound) {
		t.Fatalf("err = %v, want ErrHeaderNotFound", err)
	}
}
