package pdfraster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Fitz renders pages in process with MuPDF.
type Fitz struct{}

// NewFitz returns a MuPDF-backed Rasterizer.
func NewFitz() *Fitz {
	return &Fitz{}
}

// PageCount returns the number of pages in the PDF at path.
func (f *Fitz) PageCount(path string) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	return doc.NumPage(), nil
}

// Render rasterizes page (1-based) of the PDF at path.
func (f *Fitz) Render(path string, page int, dpi float64) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	if err := checkPage(page, doc.NumPage()); err != nil {
		return nil, err
	}

	img, err := doc.ImageDPI(page-1, dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", page, err)
	}
	return img, nil
}
