package render

import (
	"reflect"
	"strings"
	"testing"
)

// charWidth measures every rune as 10 pixels.
func charWidth(s string) int {
	return 10 * len([]rune(s))
}

func TestWrapWith(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     []string
	}{
		{
			name:     "empty",
			text:     "",
			maxWidth: 100,
			want:     nil,
		},
		{
			name:     "whitespace only",
			text:     " \t\n ",
			maxWidth: 100,
			want:     nil,
		},
		{
			name:     "fits on one line",
			text:     "hello world",
			maxWidth: 110,
			want:     []string{"hello world"},
		},
		{
			name:     "packs maximally",
			text:     "aa bb cc dd ee",
			maxWidth: 80,
			want:     []string{"aa bb cc", "dd ee"},
		},
		{
			name:     "exact fit is allowed",
			text:     "abcd efgh",
			maxWidth: 90,
			want:     []string{"abcd efgh"},
		},
		{
			name:     "long word alone at start",
			text:     "supercalifragilistic is long",
			maxWidth: 100,
			want:     []string{"supercalifragilistic", "is long"},
		},
		{
			name:     "long word in the middle",
			text:     "a b supercalifragilistic c d",
			maxWidth: 100,
			want:     []string{"a b", "supercalifragilistic", "c d"},
		},
		{
			name:     "collapses runs of whitespace",
			text:     "one\n\ntwo\v three",
			maxWidth: 1000,
			want:     []string{"one two three"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapWith(tt.text, charWidth, tt.maxWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapWith(%q, %d) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestWrapWith_NoLineExceedsUnlessSingleWord(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet consectetur ", 20) + "pneumonoultramicroscopic"
	for _, width := range []int{50, 120, 300, 700} {
		lines := WrapWith(text, charWidth, width)
		var words []string
		for _, line := range lines {
			if charWidth(line) > width && strings.Contains(line, " ") {
				t.Errorf("width %d: line %q exceeds bound", width, line)
			}
			words = append(words, strings.Fields(line)...)
		}
		if got, want := strings.Join(words, " "), strings.Join(strings.Fields(text), " "); got != want {
			t.Errorf("width %d: words lost or reordered", width)
		}
	}
}

func TestWrapWith_NextWordWouldNotFit(t *testing.T) {
	// Each line must be maximal: adding the first word of the next line
	// would overflow it.
	lines := WrapWith("aa bbb c dddd ee f ggggg", charWidth, 60)
	for i := 0; i < len(lines)-1; i++ {
		next := strings.Fields(lines[i+1])[0]
		if charWidth(lines[i]+" "+next) <= 60 {
			t.Errorf("line %q could have held %q", lines[i], next)
		}
	}
}

func TestWrap_WithFace(t *testing.T) {
	face, err := NewFace(Regular, 16)
	if err != nil {
		t.Fatalf("NewFace() error = %v", err)
	}
	defer face.Close()

	measure := func(s string) int { return Width(face, s) }

	text := "The quick brown fox jumps over the lazy dog and keeps running across the field"
	lines := WrapWith(text, measure, 200)
	if len(lines) < 2 {
		t.Fatalf("WrapWith() = %q, expected several lines", lines)
	}
	for _, line := range lines {
		if Width(face, line) > 200 && strings.Contains(line, " ") {
			t.Errorf("line %q is %d px wide, limit 200", line, Width(face, line))
		}
	}

	long := strings.Repeat("x", 200)
	got := WrapWith(long, measure, 200)
	if len(got) != 1 || got[0] != long {
		t.Errorf("WrapWith() split a single long word: %d lines", len(got))
	}
}
