package pptx

import "strings"

// ShapeKind is the element name of a shape tree child.
type ShapeKind string

// Shape kinds found in a slide's shape tree.
const (
	KindShape        ShapeKind = "sp"
	KindGroup        ShapeKind = "grpSp"
	KindPicture      ShapeKind = "pic"
	KindGraphicFrame ShapeKind = "graphicFrame"
	KindConnector    ShapeKind = "cxnSp"
)

// Slide represents a parsed slide.
type Slide struct {
	Index  int     // 0-indexed position in the presentation
	Shapes []Shape // Top-level shapes in document order
}

// Shape is a top-level shape on a slide.
type Shape struct {
	ID          int
	Name        string
	Kind        ShapeKind
	Placeholder string // Placeholder type, empty for ordinary shapes
	HasText     bool   // Shape has a text frame
	Text        string // Paragraphs joined by "\n"
}

// Texts returns the trimmed text of every shape that has a text frame with
// non-blank text, in document order.
func (s *Slide) Texts() []string {
	var texts []string
	for _, shape := range s.Shapes {
		if !shape.HasText {
			continue
		}
		if text := strings.TrimSpace(shape.Text); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}
