package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Style selects the typeface weight.
type Style int

const (
	// Regular is the body text weight.
	Regular Style = iota
	// Bold is used for titles and headers.
	Bold
)

var (
	fontsOnce   sync.Once
	fontsErr    error
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

// loadFonts parses the embedded fonts once. The parsed fonts are read-only
// and shared; faces created from them are not.
func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("parsing regular font: %w", fontsErr)
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("parsing bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

// NewFace returns a face of the given style and pixel size.
// A face is not safe for concurrent use; the caller must Close it.
func NewFace(style Style, size float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}

	f := regularFont
	if style == Bold {
		f = boldFont
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %v face: %w", style, err)
	}
	return face, nil
}

// String returns the style name.
func (s Style) String() string {
	if s == Bold {
		return "bold"
	}
	return "regular"
}
