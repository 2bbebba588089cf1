//go:build !ocr

package docpreview

import (
	"errors"
	"testing"

	"github.com/tsawler/docpreview/internal/testdoc"
	"github.com/tsawler/docpreview/ocr"
)

func TestPageText_Disabled(t *testing.T) {
	path := testdoc.PPTX(t, t.TempDir(), "deck.pptx", testdoc.PPTXSlides([]string{"Hello"}))
	p := quiet()

	if _, err := p.PageText(path, 1); !errors.Is(err, ocr.ErrOCRNotEnabled) {
		t.Errorf("PageText() error = %v, want ErrOCRNotEnabled", err)
	}
	if _, err := p.PageText(path, 2); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("PageText(2) error = %v, want ErrPageOutOfRange", err)
	}
}
