package xlsxio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/loc-sal-tools/internal/statute"
)

// defaultSheet is the worksheet excelize creates for a new workbook.
const defaultSheet = "Sheet1"

// Write saves the sheet as a new workbook at path, header in row 1 and data
// from row 2, columns in sheet.Headers order. Whole-number PDF Start values
// are stored as numbers so the file reads like the source.
func Write(path string, sheet *statute.Sheet) error {
	headers := sheet.Headers
	if len(headers) == 0 {
		headers = statute.Columns
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, 1, toCells(headers)); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cells := make([]interface{}, len(headers))
		for col, header := range headers {
			value := row.Get(header)
			cells[col] = value
			if header == statute.ColumnPDFStart {
				if n, err := strconv.Atoi(value); err == nil {
					cells[col] = n
				}
			}
		}
		if err := setRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	return nil
}

func setRow(f *excelize.File, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(defaultSheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
