// Package docx provides DOCX (Office Open XML) document parsing for page
// previews.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Pagination heuristics. DOCX files carry no page layout, so pages are
// estimated from paragraph counts.
const (
	// ParagraphsPerPage is the number of paragraphs assigned to each page.
	ParagraphsPerPage = 20

	// MaxEstimatedPages caps the estimate when no page breaks are present.
	MaxEstimatedPages = 5
)

// PageBreak is the control character page breaks appear as in run text.
const PageBreak = '\f'

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader  *zip.ReadCloser
	document   *documentXML
	paragraphs []Paragraph
}

// Paragraph is a body paragraph and its text runs, in document order.
type Paragraph struct {
	Runs []Run
}

// Run is a run of text. Tabs, line breaks and page breaks are included as
// '\t', '\n' and '\f'.
type Run struct {
	Text string
}

// Text returns the concatenated text of the paragraph's runs.
func (p Paragraph) Text() string {
	if len(p.Runs) == 1 {
		return p.Runs[0].Text
	}
	var b strings.Builder
	for _, run := range p.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Open opens a DOCX file for reading.
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

	if err := r.parseDocument(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing document: %w", err)
	}

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

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
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

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}

	r.processParagraphs()

	return nil
}

// processParagraphs converts the body paragraphs into Paragraphs.
func (r *Reader) processParagraphs() {
	if r.document == nil || r.document.Body == nil {
		return
	}

	r.paragraphs = make([]Paragraph, 0, len(r.document.Body.Paragraphs))
	for _, p := range r.document.Body.Paragraphs {
		para := Paragraph{Runs: make([]Run, 0, len(p.Runs))}
		for _, run := range p.Runs {
			para.Runs = append(para.Runs, Run{Text: run.Text})
		}
		r.paragraphs = append(r.paragraphs, para)
	}
}

// Paragraphs returns the body paragraphs in document order. Paragraphs
// nested in tables are not included.
func (r *Reader) Paragraphs() []Paragraph {
	return r.paragraphs
}

// ParagraphCount returns the number of body paragraphs.
func (r *Reader) ParagraphCount() int {
	return len(r.paragraphs)
}

// PageBreakCount returns the number of runs containing a page break.
// A run holding several breaks counts once.
func (r *Reader) PageBreakCount() int {
	n := 0
	for _, p := range r.paragraphs {
		for _, run := range p.Runs {
			if strings.ContainsRune(run.Text, PageBreak) {
				n++
			}
		}
	}
	return n
}

// PageCount returns the number of pages in the document. With explicit page
// breaks it is one more than the number of breaks; otherwise it is estimated
// at ParagraphsPerPage paragraphs per page, between 1 and MaxEstimatedPages.
func (r *Reader) PageCount() (int, error) {
	if r.document == nil {
		return 0, fmt.Errorf("document not parsed")
	}

	if breaks := r.PageBreakCount(); breaks > 0 {
		return breaks + 1, nil
	}

	pages := (len(r.paragraphs) + ParagraphsPerPage - 1) / ParagraphsPerPage
	if pages < 1 {
		pages = 1
	}
	if pages > MaxEstimatedPages {
		pages = MaxEstimatedPages
	}
	return pages, nil
}

// PageParagraphs returns the paragraphs assigned to page (1-based): the
// ParagraphsPerPage paragraphs starting at (page-1)*ParagraphsPerPage.
// Pages past the end of the document are empty.
func (r *Reader) PageParagraphs(page int) []Paragraph {
	if page < 1 {
		return nil
	}
	start := (page - 1) * ParagraphsPerPage
	if start >= len(r.paragraphs) {
		return nil
	}
	end := start + ParagraphsPerPage
	if end > len(r.paragraphs) {
		end = len(r.paragraphs)
	}
	return r.paragraphs[start:end]
}
