package docpreview

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	errLastPage  = errors.New("already at the last page")
	errFirstPage = errors.New("already at the first page")
)

// Navigation is the position of a viewer within a document. It is a value:
// moves return a new Navigation and leave the receiver unchanged.
type Navigation struct {
	Page  int // 1-indexed current page
	Total int // page count of the document
}

// NewNavigation starts at page 1 of a document with total pages.
func NewNavigation(total int) Navigation {
	return Navigation{Page: 1, Total: total}
}

// Next moves to the following page.
func (n Navigation) Next() (Navigation, error) {
	if n.Page >= n.Total {
		return n, errLastPage
	}
	n.Page++
	return n, nil
}

// Prev moves to the preceding page.
func (n Navigation) Prev() (Navigation, error) {
	if n.Page <= 1 {
		return n, errFirstPage
	}
	n.Page--
	return n, nil
}

// Jump moves to page.
func (n Navigation) Jump(page int) (Navigation, error) {
	if page < 1 || page > n.Total {
		return n, fmt.Errorf("invalid page number %d: must be between 1 and %d", page, n.Total)
	}
	n.Page = page
	return n, nil
}

// HasNext reports whether Next would succeed.
func (n Navigation) HasNext() bool {
	return n.Page < n.Total
}

// HasPrev reports whether Prev would succeed.
func (n Navigation) HasPrev() bool {
	return n.Page > 1
}

// Label describes the position for display, e.g. "deck.pptx | Slide 2 of 5".
func (n Navigation) Label(path, unit string) string {
	return fmt.Sprintf("%s | %s %d of %d", filepath.Base(path), unit, n.Page, n.Total)
}
