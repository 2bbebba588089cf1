package pdfraster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Poppler renders pages with pdftoppm and counts them with pdfcpu.
type Poppler struct {
	// Command is the pdftoppm executable, looked up on PATH when relative.
	Command string
}

// NewPoppler returns a pdftoppm-backed Rasterizer.
func NewPoppler() *Poppler {
	return &Poppler{Command: "pdftoppm"}
}

// PageCount returns the number of pages in the PDF at path.
func (p *Poppler) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return n, nil
}

// Render rasterizes page (1-based) of the PDF at path. pdftoppm writes a
// single PNG to stdout, so no temporary files are created.
func (p *Poppler) Render(path string, page int, dpi float64) (image.Image, error) {
	count, err := p.PageCount(path)
	if err != nil {
		return nil, err
	}
	if err := checkPage(page, count); err != nil {
		return nil, err
	}

	n := strconv.Itoa(page)
	cmd := exec.Command(p.Command,
		"-f", n,
		"-l", n,
		"-r", strconv.FormatFloat(dpi, 'f', -1, 64),
		"-png",
		"-singlefile",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s failed: %w: %s", p.Command, err, msg)
		}
		return nil, fmt.Errorf("%s failed: %w", p.Command, err)
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decoding %s output: %w", p.Command, err)
	}
	return img, nil
}
