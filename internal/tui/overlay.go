package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt paints overlay onto base with its top-left corner at (x, y). Either
// coordinate may be negative or past the canvas; the overlay is clipped to width x height.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitToLines(base, height)
	if width <= 0 || height <= 0 {
		return strings.Join(baseLines, "\n")
	}
	overlayLines := splitToLines(overlay, 0)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		line = padRightANSI(line, overlayWidth)
		col := x
		if col < 0 {
			line = dropColumns(line, -col)
			col = 0
		}
		if col >= width || ansi.StringWidth(line) == 0 {
			continue
		}
		if col+ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width-col, "")
		}

		target := padRightANSI(baseLines[row], width)
		left := ansi.Truncate(target, col, "")
		if w := ansi.StringWidth(left); w < col {
			left += strings.Repeat(" ", col-w)
		}
		right := dropColumns(target, col+ansi.StringWidth(line))
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// dropColumns removes the first cols display columns of s.
func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	width := ansi.StringWidth(s)
	if cols >= width {
		return ""
	}
	return ansi.TruncateLeft(s, cols, "")
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
