package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Composite places overlay on top of background with its top-left corner at
// (row, col). The background grows as needed so the overlay is never cut off
// at the bottom; ANSI sequences in both strings are preserved.
func Composite(background, overlay string, row, col int) string {
	if overlay == "" {
		return background
	}
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}

	bgLines := strings.Split(background, "\n")
	overlayLines := strings.Split(overlay, "\n")
	for len(bgLines) < row+len(overlayLines) {
		bgLines = append(bgLines, "")
	}

	for i, fg := range overlayLines {
		r := row + i
		bg := bgLines[r]
		bgWidth := ansi.StringWidth(bg)
		fgWidth := ansi.StringWidth(fg)

		left := ansi.Cut(bg, 0, col)
		if w := ansi.StringWidth(left); w < col {
			left += strings.Repeat(" ", col-w)
		}
		right := ""
		if end := col + fgWidth; end < bgWidth {
			right = ansi.Cut(bg, end, bgWidth)
		}
		bgLines[r] = left + fg + right
	}
	return strings.Join(bgLines, "\n")
}

// PadHeight appends blank lines until s has at least height lines.
func PadHeight(s string, height int) string {
	n := strings.Count(s, "\n") + 1
	if n >= height {
		return s
	}
	return s + strings.Repeat("\n", height-n)
}
