package text

import (
	"strings"
)

// BreakTextIntoLines wraps s to maxWidth. Explicit line breaks are applied
// first and each sub-line is word-wrapped greedily: words accumulate while
// the measured width stays within maxWidth, an overflowing word starts the
// next line, and a single word wider than maxWidth is still placed alone.
// Empty sub-lines from consecutive breaks are preserved.
func BreakTextIntoLines(s string, maxWidth float64, m Measurer, f Font) []string {
	lines := []string{}
	for _, sub := range strings.Split(s, "\n") {
		lines = append(lines, wrapLine(sub, maxWidth, m, f)...)
	}
	return lines
}

func wrapLine(s string, maxWidth float64, m Measurer, f Font) []string {
	words := []string{}
	for _, w := range strings.Split(s, " ") {
		if w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return []string{""}
	}

	lines := []string{}
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if m.TextWidth(candidate, f) <= maxWidth {
			line = candidate
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	return append(lines, line)
}
