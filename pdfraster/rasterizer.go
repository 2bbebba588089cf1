// Package pdfraster rasterizes single PDF pages to bitmaps.
//
// Two backends are available: "fitz" renders in process through MuPDF
// (go-fitz, requires cgo), and "poppler" runs the pdftoppm binary and reads
// page counts with pdfcpu.
package pdfraster

import (
	"errors"
	"fmt"
	"image"
)

// DefaultDPI is the resolution pages are rendered at unless configured.
const DefaultDPI = 150

var (
	// ErrPageNotFound is returned when the requested page is outside the document.
	ErrPageNotFound = errors.New("page not found")

	// ErrUnknownBackend is returned by New for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown PDF backend")
)

// Rasterizer counts and renders PDF pages. Implementations open the file on
// every call and hold no state between calls.
type Rasterizer interface {
	// PageCount returns the number of pages in the document.
	PageCount(path string) (int, error)

	// Render rasterizes page (1-based) at dpi.
	Render(path string, page int, dpi float64) (image.Image, error)
}

// Backend names a Rasterizer implementation.
type Backend string

const (
	// BackendFitz renders with MuPDF through go-fitz.
	BackendFitz Backend = "fitz"

	// BackendPoppler renders with the pdftoppm command.
	BackendPoppler Backend = "poppler"
)

// Validate checks that b names a known backend.
func (b Backend) Validate() error {
	switch b {
	case BackendFitz, BackendPoppler:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be fitz or poppler)", ErrUnknownBackend, string(b))
	}
}

// New returns the Rasterizer for backend.
func New(backend Backend) (Rasterizer, error) {
	switch backend {
	case BackendFitz:
		return NewFitz(), nil
	case BackendPoppler:
		return NewPoppler(), nil
	default:
		return nil, backend.Validate()
	}
}

// checkPage returns ErrPageNotFound unless 1 <= page <= count.
func checkPage(page, count int) error {
	if page < 1 || page > count {
		return fmt.Errorf("%w: page %d of %d", ErrPageNotFound, page, count)
	}
	return nil
}
