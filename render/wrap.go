package render

import "strings"

// MeasureFunc returns the rendered width of s in pixels.
type MeasureFunc func(s string) int

// WrapWith greedily packs the whitespace-separated words of text into lines.
// A word is appended to the current line while the joined line measures at
// most maxWidth. A word that is wider than maxWidth on its own is emitted as
// a line by itself and is never split.
func WrapWith(text string, measure MeasureFunc, maxWidth int) []string {
	var lines []string
	var current []string

	for _, word := range strings.Fields(text) {
		candidate := word
		if len(current) > 0 {
			candidate = strings.Join(current, " ") + " " + word
		}

		if measure(candidate) <= maxWidth {
			current = append(current, word)
			continue
		}

		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
			continue
		}

		lines = append(lines, word)
	}

	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	return lines
}
