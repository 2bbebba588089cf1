// Package docpreview renders a single page, slide or sheet of a PDF, DOCX,
// PPTX or XLSX document to an image.
//
// Basic usage:
//
//	p := docpreview.New()
//	if !p.IsSupported(path) {
//	    // not a previewable document
//	}
//	total := p.PageCount(path)
//	img := p.PreviewPage(path, 1)
//
// PreviewPage never fails for a supported document: problems are drawn
// onto an error image ("Slide 8 not found", "Error loading page 3") and
// logged. Navigation helps callers step through the pages:
//
//	nav := docpreview.NewNavigation(total)
//	nav, err := nav.Next()
package docpreview

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/tsawler/docpreview/format"
	"github.com/tsawler/docpreview/ocr"
	"github.com/tsawler/docpreview/render"
)

// handler counts and renders the pages of one document format. Handlers
// reopen the document on every call.
type handler interface {
	pageCount(path string) (int, error)
	render(path string, page int) (image.Image, error)
}

// Previewer renders document pages. It holds no per-document state and is
// safe for concurrent use.
type Previewer struct {
	logger   *slog.Logger
	handlers map[format.Format]handler
}

// New creates a Previewer.
func New(opts ...Option) *Previewer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Previewer{
		logger: o.logger,
		handlers: map[format.Format]handler{
			format.PDF:  pdfHandler{raster: o.rasterizer, dpi: o.dpi},
			format.DOCX: docxHandler{},
			format.PPTX: pptxHandler{},
			format.XLSX: xlsxHandler{},
		},
	}
}

// IsSupported reports whether path has a previewable extension.
func (p *Previewer) IsSupported(path string) bool {
	return format.Detect(path) != format.Unknown
}

// PageCount returns the number of pages, slides or sheets in the document.
// It returns 0 for unsupported formats and for documents that cannot be
// read; read failures are logged.
func (p *Previewer) PageCount(path string) int {
	h, ok := p.handlers[format.Detect(path)]
	if !ok {
		return 0
	}

	var count int
	err := safely(func() (err error) {
		count, err = h.pageCount(path)
		return err
	})
	if err != nil {
		p.logger.Warn("counting pages failed", "path", path, "error", err)
		return 0
	}
	return count
}

// PreviewPage renders page (1-indexed) of the document. It returns nil only
// when the format is unsupported. Any other failure produces an 800x600
// error image naming the problem.
func (p *Previewer) PreviewPage(path string, page int) image.Image {
	img, err := p.renderPage(path, page)
	if err == nil {
		return img
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		return nil
	}

	var rf *renderFailure
	if errors.As(err, &rf) {
		p.logger.Debug("page not rendered", "path", path, "page", page, "reason", rf.msg)
		return render.ErrorImage(rf.msg)
	}

	p.logger.Warn("rendering page failed", "path", path, "page", page, "error", err)
	return render.ErrorImage(fmt.Sprintf("Error loading page %d", page))
}

// PreviewPNG renders page like PreviewPage and encodes it as PNG.
func (p *Previewer) PreviewPNG(path string, page int) ([]byte, error) {
	img := p.PreviewPage(path, page)
	if img == nil {
		return nil, Unsupported(path)
	}
	return render.EncodePNG(img)
}

// PageText returns the text recognized on the rendered page. It requires a
// build with the "ocr" tag and returns ocr.ErrOCRNotEnabled otherwise.
// Unlike PreviewPage, rendering failures are returned as errors.
func (p *Previewer) PageText(path string, page int) (string, error) {
	img, err := p.renderPage(path, page)
	if err != nil {
		return "", err
	}

	client, err := ocr.New()
	if err != nil {
		return "", err
	}
	defer client.Close()

	return client.Recognize(img)
}

// renderPage dispatches to the format's handler.
func (p *Previewer) renderPage(path string, page int) (image.Image, error) {
	h, ok := p.handlers[format.Detect(path)]
	if !ok {
		return nil, Unsupported(path)
	}

	var img image.Image
	err := safely(func() (err error) {
		img, err = h.render(path, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// safely runs fn, converting a panic in a document decoder into an error.
func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	png := docpreview.Must(docpreview.New().PreviewPNG("deck.pptx", 1))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
