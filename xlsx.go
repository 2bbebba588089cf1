package docpreview

import (
	"fmt"
	"image"

	"github.com/tsawler/docpreview/render"
	"github.com/tsawler/docpreview/xlsx"
)

// XLSX sheet geometry.
const (
	xlsxWidth      = 1000
	xlsxHeight     = 800
	xlsxHeaderX    = 20
	xlsxHeaderY    = 20
	xlsxHeaderSize = 16
	xlsxCellSize   = 12
	xlsxGridX      = 20
	xlsxGridY      = 60
	xlsxCellWidth  = 150
	xlsxCellHeight = 30
	xlsxRows       = 20
	xlsxCols       = 6
	xlsxPadX       = 5
	xlsxPadY       = 8
	xlsxMaxRunes   = 15
	xlsxKeepRunes  = 12
)

// xlsxHandler previews the top-left block of a worksheet as a grid.
type xlsxHandler struct{}

func (xlsxHandler) pageCount(path string) (int, error) {
	r, err := xlsx.Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	return r.PageCount()
}

func (xlsxHandler) render(path string, page int) (image.Image, error) {
	r, err := xlsx.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if page < 1 || page > r.SheetCount() {
		return nil, pageNotFound("Sheet %d not found", page)
	}

	name, err := r.SheetName(page - 1)
	if err != nil {
		return nil, err
	}
	grid, err := r.Grid(name, xlsxRows, xlsxCols)
	if err != nil {
		return nil, err
	}

	cells, lines := layoutSheet(name, grid)

	fs := newFaceSet()
	defer fs.Close()

	c := render.NewCanvas(xlsxWidth, xlsxHeight)
	for _, cell := range cells {
		c.Rect(cell, render.Black)
	}
	if err := drawLines(c, fs, lines); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// layoutSheet returns the bordered cell rectangles of the preview grid and
// the text drawn over it. The grid always has 20x6 cells; grid supplies the
// values row by row and may be smaller.
func layoutSheet(name string, grid [][]string) ([]image.Rectangle, []textLine) {
	cells := make([]image.Rectangle, 0, xlsxRows*xlsxCols)
	lines := []textLine{{
		X:     xlsxHeaderX,
		Y:     xlsxHeaderY,
		Text:  fmt.Sprintf("Excel Sheet: %s", name),
		Style: render.Bold,
		Size:  xlsxHeaderSize,
	}}

	for row := 0; row < xlsxRows; row++ {
		for col := 0; col < xlsxCols; col++ {
			x := xlsxGridX + col*xlsxCellWidth
			y := xlsxGridY + row*xlsxCellHeight
			cells = append(cells, image.Rect(x, y, x+xlsxCellWidth, y+xlsxCellHeight))

			value := truncateCell(cellAt(grid, row, col))
			if value == "" {
				continue
			}

			style, size := render.Regular, float64(xlsxCellSize)
			if row == 0 {
				style, size = render.Bold, xlsxHeaderSize
			}
			lines = append(lines, textLine{
				X:     x + xlsxPadX,
				Y:     y + xlsxPadY,
				Text:  value,
				Style: style,
				Size:  size,
			})
		}
	}

	return cells, lines
}

func cellAt(grid [][]string, row, col int) string {
	if row >= len(grid) || col >= len(grid[row]) {
		return ""
	}
	return grid[row][col]
}

// truncateCell shortens values longer than 15 runes to their first 12
// runes followed by "...".
func truncateCell(s string) string {
	runes := []rune(s)
	if len(runes) <= xlsxMaxRunes {
		return s
	}
	return string(runes[:xlsxKeepRunes]) + "..."
}
