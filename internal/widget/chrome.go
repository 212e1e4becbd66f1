package widget

import (
	"fmt"

	"craftmon/internal/screen"
	"craftmon/internal/text"
)

// Chrome heights. Every view gets a one-row header band; the footer band
// appears only when a view paginates.
const (
	HeaderHeight = 1
	FooterHeight = 1
)

// Header draws the one-row title band: centered title, optional right-aligned
// status text.
func Header(w *screen.Window, title, status string, fg, bg screen.Color) {
	width, _ := w.Size()
	w.FillRow(0, ' ', fg, bg)
	w.WriteString(0, 0, text.Center(title, width), fg, bg)
	if status != "" && len(status) < width {
		w.WriteString(width-len(status), 0, status, fg, bg)
	}
}

// Footer pagination arrows. The page runtime registers touch zones matching
// these cells.
const (
	PrevGlyph = "<<"
	NextGlyph = ">>"
)

// Footer draws the pagination band: "<<" on the left, ">>" on the right and
// a centered "page/pages" indicator. Arrows render dimmed at the ends of the
// range.
func Footer(w *screen.Window, page, pages int, fg, bg screen.Color) {
	width, _ := w.Size()
	w.FillRow(0, ' ', fg, bg)

	prevFG, nextFG := fg, fg
	if page <= 0 {
		prevFG = screen.Gray
	}
	if page >= pages-1 {
		nextFG = screen.Gray
	}
	w.WriteString(0, 0, PrevGlyph, prevFG, bg)
	w.WriteString(width-len(NextGlyph), 0, NextGlyph, nextFG, bg)

	ind := fmt.Sprintf("%d/%d", page+1, pages)
	w.WriteString((width-len(ind))/2, 0, ind, fg, bg)
}

// FooterText draws a plain footer band with centered text, for views that
// declare a footer but do not paginate.
func FooterText(w *screen.Window, s string, fg, bg screen.Color) {
	width, _ := w.Size()
	w.FillRow(0, ' ', fg, bg)
	w.WriteString(0, 0, text.Center(text.Truncate(s, width), width), fg, bg)
}

// ErrorBanner paints the whole window with a centered error message on red.
// Used when a view's data fetch fails or its peripheral vanished.
func ErrorBanner(w *screen.Window, msg string) {
	width, height := w.Size()
	w.Fill(' ', screen.White, screen.Red)
	lines := wrap(msg, width-2)
	top := (height - len(lines)) / 2
	if top < 0 {
		top = 0
	}
	for i, line := range lines {
		if top+i >= height {
			break
		}
		w.WriteString(1, top+i, text.Center(line, width-2), screen.White, screen.Red)
	}
}

// wrap breaks s into lines at most width runes long, on rune boundaries.
// Word-aware wrapping is not worth it at these widths.
func wrap(s string, width int) []string {
	if width < 1 {
		return nil
	}
	r := []rune(s)
	var out []string
	for len(r) > width {
		out = append(out, string(r[:width]))
		r = r[width:]
	}
	return append(out, string(r))
}
