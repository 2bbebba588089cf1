package docpreview

import (
	"image"
	"unicode/utf8"

	"github.com/tsawler/docpreview/pptx"
	"github.com/tsawler/docpreview/render"
)

// PPTX slide geometry.
const (
	pptxWidth      = 800
	pptxHeight     = 600
	pptxMargin     = 50
	pptxTextWidth  = pptxWidth - 2*pptxMargin
	pptxTitleSize  = 32
	pptxTitleStep  = 40
	pptxBodySize   = 18
	pptxBodyStep   = 25
	pptxBlockGap   = 20
	pptxLineStop   = pptxHeight - 50
	pptxTitleRunes = 100
)

// pptxHandler previews the text of a slide's shapes.
type pptxHandler struct{}

func (pptxHandler) pageCount(path string) (int, error) {
	r, err := pptx.Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	return r.PageCount()
}

func (pptxHandler) render(path string, page int) (image.Image, error) {
	r, err := pptx.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if page < 1 || page > r.SlideCount() {
		return nil, pageNotFound("Slide %d not found", page)
	}

	slide, err := r.Slide(page - 1)
	if err != nil {
		return nil, err
	}

	fs := newFaceSet()
	defer fs.Close()

	lines, err := layoutSlide(fs, slide.Texts())
	if err != nil {
		return nil, err
	}

	c := render.NewCanvas(pptxWidth, pptxHeight)
	if err := drawLines(c, fs, lines); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// layoutSlide places each text block top to bottom. A block is styled as a
// title when it is the first thing on the slide or shorter than 100 runes.
func layoutSlide(fs *faceSet, texts []string) ([]textLine, error) {
	var lines []textLine

	y := pptxMargin
	for _, text := range texts {
		style, size, step := render.Regular, float64(pptxBodySize), pptxBodyStep
		if y == pptxMargin || utf8.RuneCountInString(text) < pptxTitleRunes {
			style, size, step = render.Bold, pptxTitleSize, pptxTitleStep
		}

		measure, err := fs.measure(style, size)
		if err != nil {
			return nil, err
		}

		for _, line := range render.WrapWith(text, measure, pptxTextWidth) {
			if y > pptxLineStop {
				break
			}
			lines = append(lines, textLine{
				X:     pptxMargin,
				Y:     y,
				Text:  line,
				Style: style,
				Size:  size,
			})
			y += step
		}
		y += pptxBlockGap
	}

	return lines, nil
}
