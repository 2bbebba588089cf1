package docpreview

import (
	"log/slog"

	"github.com/tsawler/docpreview/pdfraster"
)

// Option configures a Previewer.
type Option func(*options)

// options holds Previewer configuration.
type options struct {
	logger     *slog.Logger
	rasterizer pdfraster.Rasterizer
	dpi        float64
}

// defaultOptions returns the default Previewer options: the slog default
// logger, the MuPDF rasterizer and 150 DPI.
func defaultOptions() options {
	return options{
		logger:     slog.Default(),
		rasterizer: pdfraster.NewFitz(),
		dpi:        pdfraster.DefaultDPI,
	}
}

// WithLogger sets the logger used to report page count and rendering
// failures. A nil logger leaves the default in place.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRasterizer sets the PDF rasterization backend.
func WithRasterizer(r pdfraster.Rasterizer) Option {
	return func(o *options) {
		if r != nil {
			o.rasterizer = r
		}
	}
}

// WithDPI sets the resolution PDF pages are rasterized at. Values <= 0 are
// ignored.
func WithDPI(dpi float64) Option {
	return func(o *options) {
		if dpi > 0 {
			o.dpi = dpi
		}
	}
}
