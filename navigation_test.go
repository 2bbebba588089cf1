package docpreview

import "testing"

func TestNavigation_Walk(t *testing.T) {
	nav := NewNavigation(3)
	if nav.Page != 1 || nav.Total != 3 {
		t.Fatalf("NewNavigation(3) = %+v", nav)
	}

	if _, err := nav.Prev(); err == nil || err.Error() != "already at the first page" {
		t.Errorf("Prev() at page 1 error = %v", err)
	}

	var err error
	for want := 2; want <= 3; want++ {
		if nav, err = nav.Next(); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if nav.Page != want {
			t.Errorf("Next() page = %d, want %d", nav.Page, want)
		}
	}

	same, err := nav.Next()
	if err == nil || err.Error() != "already at the last page" {
		t.Errorf("Next() at last page error = %v", err)
	}
	if same != nav {
		t.Errorf("failed Next() moved to %+v", same)
	}

	if nav, err = nav.Prev(); err != nil || nav.Page != 2 {
		t.Errorf("Prev() = %+v, %v, want page 2", nav, err)
	}
}

func TestNavigation_ValueSemantics(t *testing.T) {
	nav := NewNavigation(5)
	next, _ := nav.Next()
	if nav.Page != 1 || next.Page != 2 {
		t.Errorf("Next() changed the receiver: nav=%+v next=%+v", nav, next)
	}
}

func TestNavigation_Jump(t *testing.T) {
	nav := NewNavigation(10)
	tests := []struct {
		page    int
		wantErr string
	}{
		{1, ""},
		{7, ""},
		{10, ""},
		{0, "invalid page number 0: must be between 1 and 10"},
		{11, "invalid page number 11: must be between 1 and 10"},
		{-3, "invalid page number -3: must be between 1 and 10"},
	}
	for _, tt := range tests {
		got, err := nav.Jump(tt.page)
		if tt.wantErr != "" {
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Jump(%d) error = %v, want %q", tt.page, err, tt.wantErr)
			}
			if got != nav {
				t.Errorf("failed Jump(%d) moved to %+v", tt.page, got)
			}
			continue
		}
		if err != nil || got.Page != tt.page {
			t.Errorf("Jump(%d) = %+v, %v", tt.page, got, err)
		}
	}
}

func TestNavigation_Empty(t *testing.T) {
	nav := NewNavigation(0)
	if nav.HasNext() || nav.HasPrev() {
		t.Errorf("empty document should have no neighbours: %+v", nav)
	}
	if _, err := nav.Next(); err == nil {
		t.Error("Next() on an empty document should fail")
	}
	if _, err := nav.Jump(1); err == nil {
		t.Error("Jump(1) on an empty document should fail")
	}
}

func TestNavigation_Label(t *testing.T) {
	tests := []struct {
		nav  Navigation
		path string
		unit string
		want string
	}{
		{Navigation{Page: 2, Total: 5}, "/docs/deck.pptx", "Slide", "deck.pptx | Slide 2 of 5"},
		{Navigation{Page: 1, Total: 3}, "book.xlsx", "Sheet", "book.xlsx | Sheet 1 of 3"},
		{Navigation{Page: 7, Total: 7}, "/tmp/a/report.pdf", "Page", "report.pdf | Page 7 of 7"},
	}
	for _, tt := range tests {
		if got := tt.nav.Label(tt.path, tt.unit); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
