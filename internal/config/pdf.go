package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tsawler/docpreview/pdfraster"
)

const (
	EnvPDFBackend = "DOCPREVIEW_PDF_BACKEND"
	EnvPDFDPI     = "DOCPREVIEW_PDF_DPI"
)

// PDFConfig selects how PDF pages are rasterized.
type PDFConfig struct {
	// Backend is "fitz" (MuPDF, default) or "poppler" (pdftoppm).
	Backend pdfraster.Backend `toml:"backend"`
	// DPI is the rasterization resolution. Default: 150
	DPI float64 `toml:"dpi"`
}

// Finalize applies defaults, loads environment overrides, and validates the PDF configuration.
func (c *PDFConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *PDFConfig) Merge(overlay *PDFConfig) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.DPI != 0 {
		c.DPI = overlay.DPI
	}
}

func (c *PDFConfig) loadDefaults() {
	if c.Backend == "" {
		c.Backend = pdfraster.BackendFitz
	}
	if c.DPI == 0 {
		c.DPI = pdfraster.DefaultDPI
	}
}

func (c *PDFConfig) loadEnv() error {
	if v := os.Getenv(EnvPDFBackend); v != "" {
		c.Backend = pdfraster.Backend(v)
	}
	if v := os.Getenv(EnvPDFDPI); v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPDFDPI, err)
		}
		c.DPI = dpi
	}
	return nil
}

func (c *PDFConfig) validate() error {
	if err := c.Backend.Validate(); err != nil {
		return err
	}
	if c.DPI < 36 || c.DPI > 600 {
		return fmt.Errorf("dpi %v out of range (36-600)", c.DPI)
	}
	return nil
}
