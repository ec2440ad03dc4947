// Package overlay draws one block of rendered text over another, keeping the
// ANSI styling of both.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor picks where the foreground block lands.
type Anchor int

const (
	Center Anchor = iota
	Bottom
)

// Frame is the area the foreground is drawn into.
type Frame struct {
	Width  int
	Height int
	Anchor Anchor
	// Margin keeps a Bottom block this many lines above the last row.
	Margin int
}

// Draw splices fg into bg. bg is padded with blank rows up to the frame
// height; rows of fg below the frame are dropped.
func Draw(f Frame, fg, bg string) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < f.Height {
		rows = append(rows, strings.Repeat(" ", f.Width))
	}

	block := strings.Split(fg, "\n")
	x, y := origin(f, lipgloss.Width(fg), len(block))

	for i, line := range block {
		if y+i >= len(rows) {
			break
		}
		rows[y+i] = splice(rows[y+i], line, x)
	}
	return strings.Join(rows, "\n")
}

// splice writes line over row starting at column x.
func splice(row, line string, x int) string {
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(line)
	var right string
	if end < ansi.StringWidth(row) {
		right = ansi.TruncateLeft(row, end, "")
	}
	return left + line + right
}

func origin(f Frame, w, h int) (x, y int) {
	x = max((f.Width-w)/2, 0)
	switch f.Anchor {
	case Bottom:
		y = f.Height - h - f.Margin
	default:
		y = (f.Height - h) / 2
	}
	return x, max(y, 0)
}
