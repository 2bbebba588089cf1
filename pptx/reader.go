// Package pptx provides PPTX (Office Open XML Presentation) document parsing
// for slide previews.
package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

// Reader provides access to PPTX document content.
type Reader struct {
	zipReader    *zip.ReadCloser
	presentation *presentationXML
	presRels     *relationshipsXML
	slidePaths   []string
}

// Open opens a PPTX file for reading. Slides are located but not parsed
// until requested.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		zipReader: zr,
	}

	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}

	if err := r.parseRelationships(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	if err := r.parsePresentation(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing presentation: %w", err)
	}

	r.slidePaths = r.resolveSlidePaths()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// validate checks that required PPTX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseRelationships parses the presentation relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil // Relationships might be missing in hand-built files
	}

	r.presRels = &relationshipsXML{}
	return xml.Unmarshal(data, r.presRels)
}

// parsePresentation parses the main presentation file.
func (r *Reader) parsePresentation() error {
	data, err := r.getFileContent("ppt/presentation.xml")
	if err != nil {
		return err
	}

	r.presentation = &presentationXML{}
	return xml.Unmarshal(data, r.presentation)
}

// resolveSlidePaths returns the slide part names in presentation order.
// The order comes from the slide ID list; when that cannot be resolved the
// slide files are ordered by their number.
func (r *Reader) resolveSlidePaths() []string {
	if paths := r.slidePathsFromIDList(); len(paths) > 0 {
		return paths
	}

	var paths []string
	for _, f := range r.zipReader.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			paths = append(paths, f.Name)
		}
	}

	sort.Slice(paths, func(i, j int) bool {
		return extractSlideNumber(paths[i]) < extractSlideNumber(paths[j])
	})

	return paths
}

func (r *Reader) slidePathsFromIDList() []string {
	if r.presentation == nil || r.presentation.SlideIdList == nil || r.presRels == nil {
		return nil
	}

	targets := make(map[string]string, len(r.presRels.Relationship))
	for _, rel := range r.presRels.Relationship {
		targets[rel.ID] = rel.Target
	}

	paths := make([]string, 0, len(r.presentation.SlideIdList.SlideId))
	for _, id := range r.presentation.SlideIdList.SlideId {
		target, ok := targets[id.RID]
		if !ok {
			return nil
		}
		paths = append(paths, partName("ppt", target))
	}
	return paths
}

// partName resolves a relationship target against the directory of the
// source part.
func partName(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(dir, target))
}

// extractSlideNumber extracts the slide number from a path like "ppt/slides/slide1.xml"
func extractSlideNumber(path string) int {
	name := strings.TrimPrefix(path, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}

// SlideCount returns the number of slides.
func (r *Reader) SlideCount() int {
	return len(r.slidePaths)
}

// PageCount returns the number of slides (alias for SlideCount).
func (r *Reader) PageCount() (int, error) {
	return len(r.slidePaths), nil
}

// Slide parses and returns the slide at the given index (0-indexed).
func (r *Reader) Slide(index int) (*Slide, error) {
	if index < 0 || index >= len(r.slidePaths) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(r.slidePaths)-1)
	}

	data, err := r.getFileContent(r.slidePaths[index])
	if err != nil {
		return nil, err
	}

	var sx slideXML
	if err := xml.Unmarshal(data, &sx); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", r.slidePaths[index], err)
	}

	slide := &Slide{
		Index:  index,
		Shapes: make([]Shape, 0, len(sx.CSld.SpTree.Shapes)),
	}
	for _, s := range sx.CSld.SpTree.Shapes {
		slide.Shapes = append(slide.Shapes, convertShape(s))
	}

	return slide, nil
}

// convertShape flattens a parsed shape tree child.
func convertShape(s shapeXML) Shape {
	shape := Shape{Kind: s.Kind}
	if s.Sp == nil {
		return shape
	}

	shape.ID = s.Sp.NvSpPr.CNvPr.ID
	shape.Name = s.Sp.NvSpPr.CNvPr.Name
	if ph := s.Sp.NvSpPr.NvPr.Ph; ph != nil {
		shape.Placeholder = ph.Type
	}

	if s.Sp.TxBody != nil {
		shape.HasText = true
		paras := make([]string, len(s.Sp.TxBody.P))
		for i, p := range s.Sp.TxBody.P {
			paras[i] = p.Text
		}
		shape.Text = strings.Join(paras, "\n")
	}

	return shape
}
