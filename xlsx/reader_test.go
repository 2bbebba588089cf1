package xlsx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/docpreview/internal/testdoc"
)

func openTestXLSX(t *testing.T, sheets ...testdoc.Sheet) *Reader {
	t.Helper()

	path := testdoc.XLSX(t, t.TempDir(), "test.xlsx", sheets...)
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOpen_NotFound(t *testing.T) {
	if _, err := Open("/nonexistent/file.xlsx"); err == nil {
		t.Error("Open() should return error for nonexistent file")
	}
}

func TestOpen_InvalidZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.xlsx")
	if err := os.WriteFile(path, []byte("not a zip file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Open() should return error for invalid ZIP")
	}
}

func TestReader_Sheets(t *testing.T) {
	r := openTestXLSX(t,
		testdoc.Sheet{Name: "Summary"},
		testdoc.Sheet{Name: "Q1"},
		testdoc.Sheet{Name: "Q2"},
	)

	if got := r.SheetCount(); got != 3 {
		t.Errorf("SheetCount() = %d, want 3", got)
	}
	if got, _ := r.PageCount(); got != 3 {
		t.Errorf("PageCount() = %d, want 3", got)
	}
	for i, want := range []string{"Summary", "Q1", "Q2"} {
		name, err := r.SheetName(i)
		if err != nil || name != want {
			t.Errorf("SheetName(%d) = %q, %v, want %s", i, name, err, want)
		}
	}
	if _, err := r.SheetName(3); err == nil {
		t.Error("SheetName(3) should be out of range")
	}
	if _, err := r.SheetName(-1); err == nil {
		t.Error("SheetName(-1) should be out of range")
	}
}

func TestReader_CellValue(t *testing.T) {
	r := openTestXLSX(t, testdoc.Sheet{
		Name: "Data",
		Rows: [][]any{
			{"Name", "Qty", "Active"},
			{"Widget", 42, true},
			{nil, 3.5, nil},
		},
	})

	tests := []struct {
		row, col int
		want     string
	}{
		{1, 1, "Name"},
		{1, 3, "Active"},
		{2, 1, "Widget"},
		{2, 2, "42"},
		{2, 3, "TRUE"},
		{3, 1, ""},
		{3, 2, "3.5"},
		{50, 50, ""},
	}
	for _, tt := range tests {
		got, err := r.CellValue("Data", tt.row, tt.col)
		if err != nil {
			t.Errorf("CellValue(%d, %d) error = %v", tt.row, tt.col, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CellValue(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}

	if _, err := r.CellValue("Data", 0, 1); err == nil {
		t.Error("CellValue with row 0 should return an error")
	}
	if _, err := r.CellValue("Missing", 1, 1); err == nil {
		t.Error("CellValue on a missing sheet should return an error")
	}
}

// Values come back as Excel displays them, not as the stored cell value.
func TestReader_CellValueDisplayText(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	set := func(cell string, v any) {
		t.Helper()
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("SetCellValue(%s): %v", cell, err)
		}
	}
	set("A1", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	set("A2", true)
	set("A3", false)
	set("B1", 2)
	set("B2", 3)
	if err := f.SetCellFormula("Sheet1", "B3", "SUM(B1:B2)"); err != nil {
		t.Fatalf("SetCellFormula: %v", err)
	}

	path := filepath.Join(t.TempDir(), "display.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	tests := []struct {
		row, col int
		want     string
	}{
		{1, 1, "01-15-24"},
		{2, 1, "TRUE"},
		{3, 1, "FALSE"},
	}
	for _, tt := range tests {
		got, err := r.CellValue("Sheet1", tt.row, tt.col)
		if err != nil {
			t.Fatalf("CellValue(%d, %d) error = %v", tt.row, tt.col, err)
		}
		if got != tt.want {
			t.Errorf("CellValue(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}

	// A formula shows its cached result, which is empty until Excel
	// recalculates. The formula text itself is never returned.
	got, err := r.CellValue("Sheet1", 3, 2)
	if err != nil {
		t.Fatalf("CellValue(3, 2) error = %v", err)
	}
	if strings.Contains(got, "SUM") {
		t.Errorf("CellValue(3, 2) = %q, want the cached result, not the formula", got)
	}
}

func TestReader_Grid(t *testing.T) {
	rows := make([][]any, 30)
	for i := range rows {
		rows[i] = make([]any, 10)
		for j := range rows[i] {
			rows[i][j] = i*10 + j
		}
	}
	r := openTestXLSX(t,
		testdoc.Sheet{Name: "Big", Rows: rows},
		testdoc.Sheet{Name: "Tiny", Rows: [][]any{{"only"}}},
	)

	big, err := r.Grid("Big", 20, 6)
	if err != nil {
		t.Fatalf("Grid(Big) error = %v", err)
	}
	if len(big) != 20 || len(big[0]) != 6 {
		t.Fatalf("Grid(Big) size = %dx%d, want 20x6", len(big), len(big[0]))
	}
	if big[19][5] != "195" {
		t.Errorf("Grid(Big)[19][5] = %q, want 195", big[19][5])
	}

	tiny, err := r.Grid("Tiny", 20, 6)
	if err != nil {
		t.Fatalf("Grid(Tiny) error = %v", err)
	}
	if len(tiny) != 20 {
		t.Fatalf("Grid(Tiny) rows = %d, want 20", len(tiny))
	}
	if tiny[0][0] != "only" {
		t.Errorf("Grid(Tiny)[0][0] = %q, want only", tiny[0][0])
	}
	for i, row := range tiny {
		for j, v := range row {
			if (i != 0 || j != 0) && v != "" {
				t.Errorf("Grid(Tiny)[%d][%d] = %q, want empty", i, j, v)
			}
		}
	}
}

func TestReader_Close(t *testing.T) {
	path := testdoc.XLSX(t, t.TempDir(), "close.xlsx", testdoc.Sheet{Name: "A"})
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
