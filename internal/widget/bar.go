// Package widget provides the drawing helpers views compose: progress bars,
// history graphs, header/footer bands and grid/list layout math. Everything
// draws into a screen.Window; nothing here talks to a device.
package widget

import (
	"craftmon/internal/screen"
	"craftmon/internal/text"
)

// Bar draws a horizontal progress bar of the given width at (x, y).
// frac is clamped to [0, 1].
func Bar(w *screen.Window, x, y, width int, frac float64, fill, empty screen.Color) {
	if width <= 0 {
		return
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	for i := 0; i < width; i++ {
		c := screen.Cell{Ch: ' ', FG: screen.White, BG: empty}
		if i < filled {
			c.BG = fill
		}
		w.Set(x+i, y, c)
	}
}

// LabeledBar draws a bar with a centered label overlaid on it. The label is
// truncated to the bar width and drawn with contrasting foregrounds over the
// filled and empty halves.
func LabeledBar(w *screen.Window, x, y, width int, frac float64, label string, fill, empty screen.Color) {
	Bar(w, x, y, width, frac, fill, empty)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	for i, r := range text.Center(label, width) {
		if i >= width {
			break
		}
		bg := empty
		fg := screen.White
		if i < filled {
			bg = fill
			fg = screen.Black
		}
		w.Set(x+i, y, screen.Cell{Ch: r, FG: fg, BG: bg})
	}
}

// BarColor picks a fill color by fill level: red below lowAt, orange below
// warnAt, green otherwise. Used by energy and fluid views.
func BarColor(frac, lowAt, warnAt float64) screen.Color {
	switch {
	case frac < lowAt:
		return screen.Red
	case frac < warnAt:
		return screen.Orange
	default:
		return screen.Green
	}
}
