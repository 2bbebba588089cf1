// Package format provides document format detection for the previewer.
package format

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a previewable document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// PPTX indicates a Microsoft PowerPoint (.pptx) document.
	PPTX
	// XLSX indicates a Microsoft Excel (.xlsx) document.
	XLSX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case DOCX:
		return "DOCX"
	case PPTX:
		return "PPTX"
	case XLSX:
		return "XLSX"
	default:
		return "Unknown"
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case DOCX:
		return ".docx"
	case PPTX:
		return ".pptx"
	case XLSX:
		return ".xlsx"
	default:
		return ""
	}
}

// Unit returns the name of the format's unit of navigation.
func (f Format) Unit() string {
	switch f {
	case PPTX:
		return "Slide"
	case XLSX:
		return "Sheet"
	default:
		return "Page"
	}
}

// Supported returns the formats the previewer can render, in display order.
func Supported() []Format {
	return []Format{PDF, DOCX, PPTX, XLSX}
}

// SupportedExtensions lists the extensions of the supported formats for
// messages, e.g. ".pdf, .docx, .pptx, .xlsx".
func SupportedExtensions() string {
	formats := Supported()
	exts := make([]string, len(formats))
	for i, f := range formats {
		exts[i] = f.Extension()
	}
	return strings.Join(exts, ", ")
}

// Detect determines file format from filename extension.
// The comparison is case-insensitive.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	case ".pptx":
		return PPTX
	case ".xlsx":
		return XLSX
	default:
		return Unknown
	}
}

// DetectFromReader inspects the content to determine format.
// It distinguishes the ZIP-based formats by their top-level part names.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if len(magic) < 4 {
		return Unknown, nil
	}

	if isPDFMagic(magic) {
		return PDF, nil
	}

	if isZIPMagic(magic) {
		return detectZIPFormat(r, size)
	}

	return Unknown, nil
}

func isPDFMagic(data []byte) bool {
	return data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F'
}

// ZIP local file header: PK\x03\x04
func isZIPMagic(data []byte) bool {
	return data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// detectZIPFormat inspects a ZIP archive to determine if it's DOCX, XLSX or PPTX.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}

	return Unknown, nil
}
