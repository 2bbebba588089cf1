package docpreview

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tsawler/docpreview/format"
)

var (
	// ErrUnsupportedFormat is returned for files whose extension is not one
	// of .pdf, .docx, .pptx or .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrPageOutOfRange is wrapped by failures for pages outside
	// [1, PageCount].
	ErrPageOutOfRange = errors.New("page out of range")
)

// Unsupported returns an error wrapping ErrUnsupportedFormat that names the
// file and the extensions that are accepted.
func Unsupported(path string) error {
	return fmt.Errorf("%w: %s (want %s)", ErrUnsupportedFormat, filepath.Base(path), format.SupportedExtensions())
}

// renderFailure is a handler failure that carries the message shown on the
// error image in place of the generic "Error loading page N".
type renderFailure struct {
	msg string
	err error
}

func (f *renderFailure) Error() string {
	if f.err == nil {
		return f.msg
	}
	return f.msg + ": " + f.err.Error()
}

func (f *renderFailure) Unwrap() error {
	return f.err
}

// pageNotFound returns the out-of-range failure for page. msgFormat has a
// single %d verb for the page number.
func pageNotFound(msgFormat string, page int) error {
	return &renderFailure{
		msg: fmt.Sprintf(msgFormat, page),
		err: ErrPageOutOfRange,
	}
}
