// Package utils holds cell-width layout helpers shared by the one-line
// components: the title bar and the status bar.
package utils

import "github.com/mattn/go-runewidth"

const ellipsis = "..."

// Fit shortens text to at most width terminal cells, ending it with "..."
// when it is cut and there is room for one.
func Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if width <= len(ellipsis) {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, ellipsis)
}

// Row is one line split into a left and a right part separated by Gap spaces.
type Row struct {
	Left  string
	Right string
	Gap   int
}

// Spread lays left and rights out across width cells. Each candidate in
// rights is tried in order and the first one that fits next to left with at
// least minGap spaces wins. An empty candidate means "left alone". When no
// candidate fits, the last one is kept and left is shortened instead.
func Spread(width, minGap int, left string, rights ...string) Row {
	lw := runewidth.StringWidth(left)
	for _, r := range rights {
		if r == "" {
			return Row{Left: Fit(left, width)}
		}
		if rw := runewidth.StringWidth(r); lw+minGap+rw <= width {
			return Row{Left: left, Right: r, Gap: width - lw - rw}
		}
	}
	if len(rights) == 0 {
		return Row{Left: Fit(left, width)}
	}

	right := rights[len(rights)-1]
	rw := runewidth.StringWidth(right)
	left = Fit(left, width-rw-minGap)
	gap := width - runewidth.StringWidth(left) - rw
	if gap < minGap {
		gap = minGap
	}
	return Row{Left: left, Right: right, Gap: gap}
}
