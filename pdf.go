package docpreview

import (
	"errors"
	"fmt"
	"image"

	"github.com/tsawler/docpreview/pdfraster"
)

// pdfHandler previews PDF pages through a rasterization backend.
type pdfHandler struct {
	raster pdfraster.Rasterizer
	dpi    float64
}

func (h pdfHandler) pageCount(path string) (int, error) {
	return h.raster.PageCount(path)
}

func (h pdfHandler) render(path string, page int) (image.Image, error) {
	img, err := h.raster.Render(path, page, h.dpi)
	if errors.Is(err, pdfraster.ErrPageNotFound) {
		return nil, pageNotFound("PDF page %d not found", page)
	}
	if err != nil {
		return nil, fmt.Errorf("rasterizing PDF page %d: %w", page, err)
	}
	return img, nil
}
