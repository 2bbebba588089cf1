package docpreview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tsawler/docpreview/internal/testdoc"
	"github.com/tsawler/docpreview/render"
)

func paragraphs(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = fmt.Sprintf("Paragraph %d", i+1)
	}
	return texts
}

func TestDOCX_PageCountBounds(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		paragraphs int
		want       int
	}{
		{0, 1},
		{1, 1},
		{20, 1},
		{21, 2},
		{45, 3},
		{100, 5},
		{500, 5},
	}
	p := quiet()

	for _, tt := range tests {
		name := fmt.Sprintf("p%d.docx", tt.paragraphs)
		path := testdoc.DOCX(t, dir, name, testdoc.DOCXParagraphs(paragraphs(tt.paragraphs)...))
		if got := p.PageCount(path); got != tt.want {
			t.Errorf("PageCount() with %d paragraphs = %d, want %d", tt.paragraphs, got, tt.want)
		}
	}
}

func TestDOCX_PageBreaks(t *testing.T) {
	body := testdoc.DOCXParagraphs("One") + testdoc.DOCXPageBreak +
		testdoc.DOCXParagraphs("Two") + testdoc.DOCXPageBreak +
		testdoc.DOCXParagraphs("Three")
	path := testdoc.DOCX(t, t.TempDir(), "breaks.docx", body)

	if got := quiet().PageCount(path); got != 3 {
		t.Errorf("PageCount() = %d, want 3", got)
	}
}

func TestDOCX_Preview(t *testing.T) {
	path := testdoc.DOCX(t, t.TempDir(), "report.docx", testdoc.DOCXParagraphs(paragraphs(45)...))
	p := quiet()

	for page := 1; page <= 3; page++ {
		wantSize(t, p.PreviewPage(path, page), 800, 1000)
	}
	wantErrorImage(t, p.PreviewPage(path, 4), "Page 4 not found")
	wantErrorImage(t, p.PreviewPage(path, 0), "Page 0 not found")
}

func TestDOCX_LayoutHeader(t *testing.T) {
	fs := newFaceSet()
	defer fs.Close()

	lines, err := layoutDOCX(fs, 2, []string{"  ", "Hello world", ""})
	if err != nil {
		t.Fatalf("layoutDOCX() error = %v", err)
	}

	want := []textLine{
		{X: 50, Y: 20, Text: "DOCX Document - Page 2", Style: render.Bold, Size: 24},
		{X: 50, Y: 50, Text: "Hello world", Style: render.Regular, Size: 16},
	}
	if len(lines) != len(want) {
		t.Fatalf("layoutDOCX() = %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}
}

func TestDOCX_LayoutSpacing(t *testing.T) {
	fs := newFaceSet()
	defer fs.Close()

	lines, err := layoutDOCX(fs, 1, []string{"A", "B", "C"})
	if err != nil {
		t.Fatal(err)
	}

	// Line step 25 plus 10 between paragraphs.
	wantY := []int{20, 50, 85, 120}
	for i, l := range lines {
		if l.Y != wantY[i] {
			t.Errorf("line %d Y = %d, want %d", i, l.Y, wantY[i])
		}
	}
}

func TestDOCX_LayoutOverflow(t *testing.T) {
	fs := newFaceSet()
	defer fs.Close()

	long := strings.Repeat("overflowing paragraph text ", 40)
	texts := make([]string, 20)
	for i := range texts {
		texts[i] = long
	}

	lines, err := layoutDOCX(fs, 1, texts)
	if err != nil {
		t.Fatal(err)
	}

	last := lines[len(lines)-1]
	if last.Y > 950 {
		t.Errorf("last line at y=%d, past the page", last.Y)
	}
	if last.Y <= 865 {
		t.Errorf("last line at y=%d, expected the page to be filled", last.Y)
	}

	measure, err := fs.measure(render.Regular, 16)
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range lines[1:] {
		if w := measure(l.Text); w > 700 {
			t.Errorf("line %q is %d px wide, want <= 700", l.Text, w)
		}
	}
}
