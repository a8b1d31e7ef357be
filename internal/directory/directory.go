// Package directory reads the reseller lookup table maintained next to the
// service: two columns, code and name. The file is owned by the sales team
// and may change between requests, so it is re-read wholesale on every call.
package directory

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Directory struct {
	path string
}

func New(path string) *Directory {
	return &Directory{path: path}
}

// List returns every usable entry as "<code> <name>", sorted. Rows with an
// empty or null-like code or name are skipped.
func (d *Directory) List() ([]string, error) {
	blob, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("read reseller directory: %w", err)
	}

	var rows [][]string
	if strings.EqualFold(filepath.Ext(d.path), ".xlsx") {
		rows, err = readXLSXRows(blob)
	} else {
		rows, err = readCSVRows(blob)
	}
	if err != nil {
		return nil, fmt.Errorf("parse reseller directory: %w", err)
	}

	out := make([]string, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		code := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if i == 0 && strings.EqualFold(code, "code") {
			continue
		}
		if isBlank(code) || isBlank(name) {
			continue
		}
		out = append(out, code+" "+name)
	}
	sort.Strings(out)
	return out, nil
}

func readXLSXRows(blob []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetRows(f.GetSheetName(0))
}

func readCSVRows(blob []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(blob))
	reader.Comma = ';'
	if !bytes.Contains(blob, []byte(";")) {
		reader.Comma = ','
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func isBlank(value string) bool {
	switch strings.ToLower(value) {
	case "", "nan", "none", "null":
		return true
	}
	return false
}
