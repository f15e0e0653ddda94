package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceOverlay draws fg over bg with its top-left corner at (x, y). With
// center set, x and y are ignored and fg is centered in bg. Cells of bg
// outside fg keep their styling; fg lines past bg's edges are cut.
func PlaceOverlay(x, y int, fg, bg string, center bool) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	fgWidth := lipgloss.Width(fg)
	bgWidth := lipgloss.Width(bg)

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (len(bgLines) - len(fgLines)) / 2
	}
	x = max(x, 0)
	y = max(y, 0)

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		if x >= bgWidth && bgWidth > 0 {
			break
		}
		bgLines[row] = spliceLine(bgLines[row], line, x, bgWidth)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLine replaces the cells of bg starting at x with fg, clipped to
// width. Non-SGR escapes under fg (zone markers) are re-emitted right after
// fg so they never move left of the cut, and the right part starts with the
// SGR state bg had at its first cell.
func spliceLine(bg, fg string, x, width int) string {
	fgw := ansi.StringWidth(fg)
	if width > 0 && x+fgw > width {
		fg = ansi.Truncate(fg, width-x, "")
		fgw = ansi.StringWidth(fg)
	}
	end := x + fgw

	var left, covered, style, right strings.Builder
	var state byte
	col := 0
	for len(bg) > 0 {
		seq, w, n, next := ansi.DecodeSequence(bg, state, nil)
		if n <= 0 {
			break
		}
		state = next
		bg = bg[n:]

		if w == 0 && isEscape(seq) {
			sgr := isSGR(seq)
			switch {
			case col < x:
				left.WriteString(seq)
				if sgr {
					style.WriteString(seq)
				}
			case col < end:
				if sgr {
					style.WriteString(seq)
				} else {
					covered.WriteString(seq)
				}
			default:
				right.WriteString(seq)
			}
			continue
		}

		switch {
		case col+w <= x && col < x:
			left.WriteString(seq)
		case col >= end:
			right.WriteString(seq)
		default:
			// a wide cell straddling an edge becomes blanks
			if col < x {
				left.WriteString(strings.Repeat(" ", x-col))
			}
			if col+w > end {
				right.WriteString(strings.Repeat(" ", col+w-end))
			}
		}
		col += w
	}
	if col < x {
		left.WriteString(strings.Repeat(" ", x-col))
	}

	return left.String() + "\x1b[0m" + fg + "\x1b[0m" + covered.String() + style.String() + right.String()
}

func isEscape(seq string) bool {
	return len(seq) > 0 && (seq[0] == ansi.ESC || seq[0] == ansi.CSI)
}

func isSGR(seq string) bool {
	return ansi.HasCsiPrefix(seq) && strings.HasSuffix(seq, "m")
}
