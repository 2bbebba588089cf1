// Package xlsx provides read access to XLSX (Office Open XML Spreadsheet)
// workbooks for sheet previews.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Reader provides access to XLSX workbook content.
type Reader struct {
	file   *excelize.File
	sheets []string
}

// Open opens an XLSX file for reading. Cell values are read as the
// formatted text Excel would display, using cached results for formulas.
func Open(filename string) (*Reader, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}

	return &Reader{
		file:   f,
		sheets: f.GetSheetList(),
	}, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// SheetCount returns the number of sheets in workbook order, hidden
// sheets included.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// PageCount returns the number of sheets (alias for SheetCount).
func (r *Reader) PageCount() (int, error) {
	return len(r.sheets), nil
}

// SheetName returns the name of the sheet at the given index (0-indexed).
func (r *Reader) SheetName(index int) (string, error) {
	if index < 0 || index >= len(r.sheets) {
		return "", fmt.Errorf("sheet index %d out of range (0-%d)", index, len(r.sheets)-1)
	}
	return r.sheets[index], nil
}

// CellValue returns the displayed value of a cell. Row and column are
// 1-indexed. Empty cells return "".
func (r *Reader) CellValue(sheet string, row, col int) (string, error) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return r.file.GetCellValue(sheet, ref)
}

// Grid returns the top-left rows x cols block of a sheet. The result always
// has exactly rows rows of cols values; cells beyond the sheet's used range
// are "".
func (r *Reader) Grid(sheet string, rows, cols int) ([][]string, error) {
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
		for j := range grid[i] {
			v, err := r.CellValue(sheet, i+1, j+1)
			if err != nil {
				return nil, fmt.Errorf("reading %s row %d col %d: %w", sheet, i+1, j+1, err)
			}
			grid[i][j] = v
		}
	}
	return grid, nil
}
