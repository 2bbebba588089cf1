package docpreview

import (
	"golang.org/x/image/font"

	"github.com/tsawler/docpreview/render"
)

// textLine is a single line of text placed on a page. X and Y are the
// top-left corner of the line.
type textLine struct {
	X, Y  int
	Text  string
	Style render.Style
	Size  float64
}

type faceKey struct {
	style render.Style
	size  float64
}

// faceSet lazily creates the font faces used while laying out and drawing
// one page. Faces are not safe for concurrent use, so each render gets its
// own set.
type faceSet struct {
	faces map[faceKey]font.Face
}

func newFaceSet() *faceSet {
	return &faceSet{faces: make(map[faceKey]font.Face)}
}

func (fs *faceSet) face(style render.Style, size float64) (font.Face, error) {
	key := faceKey{style, size}
	if f, ok := fs.faces[key]; ok {
		return f, nil
	}
	f, err := render.NewFace(style, size)
	if err != nil {
		return nil, err
	}
	fs.faces[key] = f
	return f, nil
}

// measure returns a width function for the given style and size.
func (fs *faceSet) measure(style render.Style, size float64) (render.MeasureFunc, error) {
	f, err := fs.face(style, size)
	if err != nil {
		return nil, err
	}
	return func(s string) int { return render.Width(f, s) }, nil
}

func (fs *faceSet) Close() error {
	for key, f := range fs.faces {
		f.Close()
		delete(fs.faces, key)
	}
	return nil
}

// drawLines draws lines in black.
func drawLines(c *render.Canvas, fs *faceSet, lines []textLine) error {
	for _, l := range lines {
		f, err := fs.face(l.Style, l.Size)
		if err != nil {
			return err
		}
		c.Text(l.X, l.Y, l.Text, f, render.Black)
	}
	return nil
}
