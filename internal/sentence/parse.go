package sentence

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column layout shared by CSV exports and spreadsheets:
// A=level, B=id, C=category, D=source, E=target, F=note.
const (
	colLevel = iota
	colID
	colCategory
	colSource
	colTarget
	colNote
)

// RowError describes a row that could not be turned into an item.
type RowError struct {
	Row int // 1-based
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ParseResult holds parsed items plus the rows that were skipped.
type ParseResult struct {
	Items   []Item
	Skipped []*RowError
}

// ParseRows converts raw spreadsheet rows into items. A first row whose level
// cell is not a number is treated as a header.
func ParseRows(rows [][]string) *ParseResult {
	res := &ParseResult{}
	for i, row := range rows {
		rowNum := i + 1
		if isBlankRow(row) {
			continue
		}
		if i == 0 && isHeaderRow(row) {
			continue
		}

		item, err := parseRow(row, rowNum)
		if err != nil {
			res.Skipped = append(res.Skipped, &RowError{Row: rowNum, Err: err})
			continue
		}
		res.Items = append(res.Items, item)
	}
	return res
}

func parseRow(row []string, rowNum int) (Item, error) {
	item := Item{
		ID:       cell(row, colID),
		Category: cell(row, colCategory),
		Source:   cell(row, colSource),
		Target:   cell(row, colTarget),
		Note:     cell(row, colNote),
		Level:    1,
	}

	if raw := cell(row, colLevel); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			return Item{}, fmt.Errorf("invalid level %q", raw)
		}
		if level < 1 {
			return Item{}, fmt.Errorf("level %d must be >= 1", level)
		}
		item.Level = level
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("item-%d", rowNum)
	}
	if item.Target == "" {
		return Item{}, fmt.Errorf("missing target sentence")
	}
	return item, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(row[idx], "\ufeff"))
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isHeaderRow(row []string) bool {
	raw := cell(row, colLevel)
	if raw == "" {
		return false
	}
	_, err := strconv.Atoi(raw)
	return err != nil
}

// ParseCSV reads items from CSV data.
func ParseCSV(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return ParseRows(rows), nil
}

// ParseXLSX reads items from a sheet of an Excel workbook. An empty sheet
// name selects the first sheet.
func ParseXLSX(path, sheet string) (*ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return ParseRows(rows), nil
}

// ParseFile dispatches on the file extension: .xlsx/.xlsm workbooks go
// through excelize, everything else is read as CSV.
func ParseFile(path string) (*ParseResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ParseXLSX(path, "")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}
