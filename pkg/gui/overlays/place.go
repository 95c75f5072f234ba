package overlays

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

// PlaceOverlay draws fg on top of bg. With center set, x and y are ignored
// and fg is centered on bg. Background cells covered by fg are replaced;
// the rest of each background line keeps its styling.
func PlaceOverlay(x, y int, fg, bg string, center bool) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	fgWidth := maxLineWidth(fgLines)
	bgWidth := maxLineWidth(bgLines)
	if fgWidth >= bgWidth && len(fgLines) >= len(bgLines) {
		return fg
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (len(bgLines) - len(fgLines)) / 2
	}
	x = clamp(x, 0, max(bgWidth-fgWidth, 0))
	y = clamp(y, 0, max(len(bgLines)-len(fgLines), 0))

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+len(fgLines) {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.PrintableRuneWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(strings.Repeat(" ", x-pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		if right != "" {
			// Reset so fg styling does not bleed into the background.
			b.WriteString("\x1b[0m")
			b.WriteString(right)
		}
	}
	return b.String()
}

// cutLeft drops the first n printable cells of s while keeping every escape
// sequence, so styles that started before the cut still apply.
func cutLeft(s string, n int) string {
	var (
		b        strings.Builder
		width    int
		inEscape bool
	)
	for _, r := range s {
		if r == ansi.Marker {
			inEscape = true
		}
		if inEscape {
			b.WriteRune(r)
			if ansi.IsTerminator(r) {
				inEscape = false
			}
			continue
		}
		if width >= n {
			b.WriteRune(r)
		}
		width += runewidth.RuneWidth(r)
	}
	if width <= n {
		return ""
	}
	return b.String()
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		if lw := ansi.PrintableRuneWidth(l); lw > w {
			w = lw
		}
	}
	return w
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
