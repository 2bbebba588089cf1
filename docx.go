package docpreview

import (
	"fmt"
	"image"
	"strings"

	"github.com/tsawler/docpreview/docx"
	"github.com/tsawler/docpreview/render"
)

// DOCX page geometry.
const (
	docxWidth         = 800
	docxHeight        = 1000
	docxMargin        = 50
	docxTextWidth     = docxWidth - 2*docxMargin
	docxHeaderY       = 20
	docxHeaderSize    = 24
	docxTextSize      = 16
	docxLineStep      = 25
	docxParagraphGap  = 10
	docxParagraphStop = docxHeight - 100
	docxLineStop      = docxHeight - 50
)

// docxHandler previews DOCX documents as plain paragraph text. Pagination
// is estimated, not computed from the document's layout.
type docxHandler struct{}

func (docxHandler) pageCount(path string) (int, error) {
	r, err := docx.Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	return r.PageCount()
}

func (docxHandler) render(path string, page int) (image.Image, error) {
	r, err := docx.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, err
	}
	if page < 1 || page > count {
		return nil, pageNotFound("Page %d not found", page)
	}

	paras := r.PageParagraphs(page)
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.Text()
	}

	fs := newFaceSet()
	defer fs.Close()

	lines, err := layoutDOCX(fs, page, texts)
	if err != nil {
		return nil, err
	}

	c := render.NewCanvas(docxWidth, docxHeight)
	if err := drawLines(c, fs, lines); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// layoutDOCX places the header and the wrapped paragraphs of one page.
// Paragraphs that do not fit are dropped.
func layoutDOCX(fs *faceSet, page int, paragraphs []string) ([]textLine, error) {
	measure, err := fs.measure(render.Regular, docxTextSize)
	if err != nil {
		return nil, err
	}

	lines := []textLine{{
		X:     docxMargin,
		Y:     docxHeaderY,
		Text:  fmt.Sprintf("DOCX Document - Page %d", page),
		Style: render.Bold,
		Size:  docxHeaderSize,
	}}

	y := docxMargin
	for _, p := range paragraphs {
		if y > docxParagraphStop {
			break
		}
		text := strings.TrimSpace(p)
		if text == "" {
			continue
		}

		for _, line := range render.WrapWith(text, measure, docxTextWidth) {
			if y > docxLineStop {
				break
			}
			lines = append(lines, textLine{
				X:     docxMargin,
				Y:     y,
				Text:  line,
				Style: render.Regular,
				Size:  docxTextSize,
			})
			y += docxLineStep
		}
		y += docxParagraphGap
	}

	return lines, nil
}
