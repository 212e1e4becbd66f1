package screen

import "strings"

// Cell is a single character cell with foreground and background colors.
type Cell struct {
	Ch rune
	FG Color
	BG Color
}

// Buffer is an off-screen grid of cells. Coordinates are zero-based with the
// origin at the top left. All writes clip to the buffer bounds.
type Buffer struct {
	w, h  int
	cells []Cell
}

// NewBuffer allocates a cleared buffer of the given size. Non-positive
// dimensions yield an empty buffer that swallows all writes.
func NewBuffer(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Buffer{w: w, h: h, cells: make([]Cell, w*h)}
	b.Clear(Black)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) { return b.w, b.h }

// Clear resets every cell to a space with the given background.
func (b *Buffer) Clear(bg Color) {
	for i := range b.cells {
		b.cells[i] = Cell{Ch: ' ', FG: White, BG: bg}
	}
}

// Set writes a single cell. Out-of-bounds writes are dropped.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	if c.Ch == 0 {
		c.Ch = ' '
	}
	b.cells[y*b.w+x] = c
}

// At returns the cell at (x, y). Out-of-bounds reads return a black space.
func (b *Buffer) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return Cell{Ch: ' ', FG: White, BG: Black}
	}
	return b.cells[y*b.w+x]
}

// WriteString draws text starting at (x, y), clipping at the right edge.
func (b *Buffer) WriteString(x, y int, s string, fg, bg Color) {
	for _, r := range s {
		if x >= b.w {
			return
		}
		b.Set(x, y, Cell{Ch: r, FG: fg, BG: bg})
		x++
	}
}

// FillRow paints an entire row with the rune and colors.
func (b *Buffer) FillRow(y int, ch rune, fg, bg Color) {
	for x := 0; x < b.w; x++ {
		b.Set(x, y, Cell{Ch: ch, FG: fg, BG: bg})
	}
}

// FillRect paints a rectangle, clipped to the buffer.
func (b *Buffer) FillRect(x, y, w, h int, ch rune, fg, bg Color) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			b.Set(x+dx, y+dy, Cell{Ch: ch, FG: fg, BG: bg})
		}
	}
}

// Row returns the characters of row y as a string, without color information.
// Used by tests and the status view.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.h {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.w; x++ {
		sb.WriteRune(b.cells[y*b.w+x].Ch)
	}
	return sb.String()
}

// RowCells returns a copy of row y.
func (b *Buffer) RowCells(y int) []Cell {
	if y < 0 || y >= b.h {
		return nil
	}
	out := make([]Cell, b.w)
	copy(out, b.cells[y*b.w:(y+1)*b.w])
	return out
}

// CopyFrom overwrites this buffer with src. Both must be the same size;
// mismatched sizes copy the overlapping region only.
func (b *Buffer) CopyFrom(src *Buffer) {
	if src.w == b.w && src.h == b.h {
		copy(b.cells, src.cells)
		return
	}
	for y := 0; y < b.h && y < src.h; y++ {
		for x := 0; x < b.w && x < src.w; x++ {
			b.Set(x, y, src.At(x, y))
		}
	}
}

// rowEqual reports whether row y holds identical cells in both buffers.
func rowEqual(a, b *Buffer, y int) bool {
	if a.w != b.w {
		return false
	}
	ar := a.cells[y*a.w : (y+1)*a.w]
	br := b.cells[y*b.w : (y+1)*b.w]
	for i := range ar {
		if ar[i] != br[i] {
			return false
		}
	}
	return true
}
