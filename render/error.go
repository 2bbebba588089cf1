package render

import "image"

// Error image geometry.
const (
	ErrorWidth    = 800
	ErrorHeight   = 600
	ErrorFontSize = 24
)

// ErrorImage returns an 800x600 white image with message centered in red.
// It never fails: if the font cannot be loaded the image is returned blank.
func ErrorImage(message string) *image.RGBA {
	c := NewCanvas(ErrorWidth, ErrorHeight)

	face, err := NewFace(Regular, ErrorFontSize)
	if err != nil {
		return c.Image()
	}
	defer face.Close()

	x := (ErrorWidth - Width(face, message)) / 2
	y := (ErrorHeight - LineHeight(face)) / 2
	c.Text(x, y, message, face, Red)

	return c.Image()
}
