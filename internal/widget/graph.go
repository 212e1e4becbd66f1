package widget

import "craftmon/internal/screen"

// History is a fixed-capacity ring of samples feeding a Graph. Zero value is
// not usable; create with NewHistory.
type History struct {
	samples []float64
	head    int
	n       int
}

// NewHistory creates a ring holding up to capacity samples.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{samples: make([]float64, capacity)}
}

// Push appends a sample, evicting the oldest when full.
func (h *History) Push(v float64) {
	h.samples[h.head] = v
	h.head = (h.head + 1) % len(h.samples)
	if h.n < len(h.samples) {
		h.n++
	}
}

// Len returns the number of stored samples.
func (h *History) Len() int { return h.n }

// Values returns samples oldest-first.
func (h *History) Values() []float64 {
	out := make([]float64, 0, h.n)
	start := h.head - h.n
	if start < 0 {
		start += len(h.samples)
	}
	for i := 0; i < h.n; i++ {
		out = append(out, h.samples[(start+i)%len(h.samples)])
	}
	return out
}

// Last returns the most recent sample, or 0 when empty.
func (h *History) Last() float64 {
	if h.n == 0 {
		return 0
	}
	i := h.head - 1
	if i < 0 {
		i += len(h.samples)
	}
	return h.samples[i]
}

// graph glyphs, one per vertical eighth of a cell.
var graphLevels = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Graph draws the newest width samples as a one-row sparkline at (x, y),
// scaled to the max sample in view. A flat zero series renders as blanks.
func Graph(w *screen.Window, x, y, width int, h *History, fg screen.Color) {
	if width <= 0 || h == nil {
		return
	}
	vals := h.Values()
	if len(vals) > width {
		vals = vals[len(vals)-width:]
	}
	var max float64
	for _, v := range vals {
		if v > max {
			max = v
		}
	}
	// Right-align so the newest sample sits at the right edge.
	start := x + width - len(vals)
	for i, v := range vals {
		level := 0
		if max > 0 && v > 0 {
			level = int(v/max*8 + 0.5)
			if level < 1 {
				level = 1
			}
			if level > 8 {
				level = 8
			}
		}
		w.Set(start+i, y, screen.Cell{Ch: graphLevels[level], FG: fg, BG: screen.Black})
	}
}

// GraphRows draws a taller graph occupying rows y..y+rows-1, newest sample at
// the right edge, scaled to the max sample in view.
func GraphRows(w *screen.Window, x, y, width, rows int, h *History, fg screen.Color) {
	if rows <= 1 {
		Graph(w, x, y, width, h, fg)
		return
	}
	vals := h.Values()
	if len(vals) > width {
		vals = vals[len(vals)-width:]
	}
	var max float64
	for _, v := range vals {
		if v > max {
			max = v
		}
	}
	start := x + width - len(vals)
	for i, v := range vals {
		eighths := 0
		if max > 0 && v > 0 {
			eighths = int(v/max*float64(rows*8) + 0.5)
			if eighths < 1 {
				eighths = 1
			}
			if eighths > rows*8 {
				eighths = rows * 8
			}
		}
		for r := 0; r < rows; r++ {
			// Row 0 is the top of the graph.
			rowBottom := (rows - 1 - r) * 8
			level := eighths - rowBottom
			if level < 0 {
				level = 0
			}
			if level > 8 {
				level = 8
			}
			w.Set(start+i, y+r, screen.Cell{Ch: graphLevels[level], FG: fg, BG: screen.Black})
		}
	}
}
