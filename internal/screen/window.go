package screen

// Window is a clipped sub-rectangle of a Buffer with its own origin. The base
// view runtime carves a frame into header, body and footer windows once and
// reuses them between renders.
type Window struct {
	buf        *Buffer
	x, y, w, h int
}

// NewWindow creates a window over buf. The rectangle is clamped to the
// buffer bounds.
func NewWindow(buf *Buffer, x, y, w, h int) *Window {
	bw, bh := buf.Size()
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > bw {
		w = bw - x
	}
	if y+h > bh {
		h = bh - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Window{buf: buf, x: x, y: y, w: w, h: h}
}

// Size returns the window dimensions.
func (w *Window) Size() (width, height int) { return w.w, w.h }

// Origin returns the window position within the underlying buffer.
func (w *Window) Origin() (x, y int) { return w.x, w.y }

// Set writes a cell in window coordinates.
func (w *Window) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= w.w || y >= w.h {
		return
	}
	w.buf.Set(w.x+x, w.y+y, c)
}

// WriteString draws text at window coordinates, clipping at the window edge.
func (w *Window) WriteString(x, y int, s string, fg, bg Color) {
	for _, r := range s {
		if x >= w.w {
			return
		}
		w.Set(x, y, Cell{Ch: r, FG: fg, BG: bg})
		x++
	}
}

// Fill paints the whole window.
func (w *Window) Fill(ch rune, fg, bg Color) {
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			w.Set(x, y, Cell{Ch: ch, FG: fg, BG: bg})
		}
	}
}

// FillRow paints one window row.
func (w *Window) FillRow(y int, ch rune, fg, bg Color) {
	for x := 0; x < w.w; x++ {
		w.Set(x, y, Cell{Ch: ch, FG: fg, BG: bg})
	}
}

// Sub returns a window into a sub-rectangle of this window.
func (w *Window) Sub(x, y, width, height int) *Window {
	return NewWindow(w.buf, w.x+x, w.y+y, width, height)
}
