package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncateWidth shortens value to width terminal cells with a trailing
// ellipsis. Wide CJK runes count as two cells. Widths too narrow for the
// ellipsis get a plain clip.
func truncateWidth(value string, width int) string {
	value = strings.TrimSpace(value)
	if width <= 0 || lipgloss.Width(value) <= width {
		return value
	}
	const ellipsis = "..."
	if width <= len(ellipsis) {
		return clipWidth(value, width)
	}
	return clipWidth(value, width-len(ellipsis)) + ellipsis
}

// clipWidth keeps the leading runes of value that fit in width cells.
func clipWidth(value string, width int) string {
	var b strings.Builder
	used := 0
	for _, r := range value {
		w := lipgloss.Width(string(r))
		if used+w > width {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String()
}

// padRight pads a string with spaces to the given display width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ternary returns a if cond is true, otherwise b.
func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
