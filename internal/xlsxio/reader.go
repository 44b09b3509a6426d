// =============================================================================
// Statutes at Large Tools - Spreadsheet Reader
// =============================================================================
//
// This module reads statute metadata spreadsheets into a statute.Sheet.
//
// SHEET LAYOUT (first worksheet):
//
//   | Row 1     | header row (raw names, normalized through the header map) |
//   | 2..S-1    | skipped (notes, sub-headers)                              |
//   | S..end    | data rows, S = START_ROW                                  |
//
// Audited and in-process files are written without the skipped rows, so
// they are read back with START_ROW = 2.
//
// NORMALIZATION:
//   - Headers are renamed through the header map; unmapped names pass through.
//   - Type cells are renamed through the statute map; unmapped values pass through.
//   - Columns outside the fixed set are kept and written back unchanged.
//   - Raw columns that normalize to the same name are merged into one; the
//     first non-empty cell of the row wins.
//
// =============================================================================

package xlsxio

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
)

// Reader errors.
var (
	ErrNotFound      = errors.New("file not found")
	ErrNoSheet       = errors.New("workbook has no sheets")
	ErrEmpty         = errors.New("file is empty or lacks data")
	ErrMissingColumn = errors.New("missing required column")
)

// =============================================================================
// READ OPTIONS
// =============================================================================

// Options controls how a workbook is read.
type Options struct {
	// StartRow is the 1-based row where data begins. Values below 2 are
	// treated as 2.
	StartRow int

	// Normalizer renames headers and statute types. Nil leaves them as read.
	Normalizer *statute.Normalizer
}

// =============================================================================
// READER FUNCTIONS
// =============================================================================

// Read loads the first worksheet of the workbook at path.
//
// RETURNS:
//   - The normalized sheet, rows in file order.
//   - ErrNotFound, ErrNoSheet, ErrEmpty or ErrMissingColumn (wrapped with the
//     path), or the excelize error if the file is not a valid workbook.
func Read(path string, opts Options) (*statute.Sheet, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSheet)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}

	sheet, err := build(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sheet.SourceFile = path

	return sheet, nil
}

// build turns raw worksheet rows into a normalized sheet.
func build(rows [][]string, opts Options) (*statute.Sheet, error) {
	if len(rows) == 0 || isRowEmpty(rows[0]) {
		return nil, ErrEmpty
	}

	startRow := opts.StartRow
	if startRow < 2 {
		startRow = 2
	}

	headers := opts.Normalizer.Headers(cleanHeaders(rows[0]))
	sheet := &statute.Sheet{Headers: uniqueHeaders(headers)}

	for _, col := range statute.RequiredColumns {
		if !sheet.HasColumn(col) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	for i := startRow - 1; i < len(rows); i++ {
		raw := rows[i]
		if isRowEmpty(raw) {
			continue
		}

		row := statute.Row{Line: i + 1}
		for col, header := range headers {
			value := ""
			if col < len(raw) {
				value = strings.TrimSpace(raw[col])
			}
			// Several raw columns may normalize to one name; the first
			// non-empty cell wins.
			if row.Get(header) != "" {
				continue
			}
			if header == statute.ColumnType {
				value = string(opts.Normalizer.Type(value))
			}
			row.Set(header, value)
		}

		sheet.Rows = append(sheet.Rows, row)
	}

	if len(sheet.Rows) == 0 {
		return nil, ErrEmpty
	}

	return sheet, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// uniqueHeaders drops repeated names, keeping the first position.
func uniqueHeaders(headers []string) []string {
	seen := make(map[string]bool, len(headers))
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}

// cleanHeaders trims header names and names blank headers by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}
