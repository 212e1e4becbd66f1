package sim

import (
	"sync"

	"craftmon/internal/peripheral"
	"craftmon/internal/screen"
)

// Monitor is a simulated cell-grid display. BlitRow copies rows in; the
// console reads frames back out with Snapshot. Safe for concurrent use.
type Monitor struct {
	name string

	mu    sync.RWMutex
	w, h  int
	cells [][]screen.Cell
	scale float64
	gen   uint64
}

// NewMonitor creates a monitor of w x h cells.
func NewMonitor(name string, w, h int) *Monitor {
	m := &Monitor{name: name, w: w, h: h, scale: 1}
	m.cells = blankGrid(w, h)
	return m
}

func blankGrid(w, h int) [][]screen.Cell {
	g := make([][]screen.Cell, h)
	for y := range g {
		row := make([]screen.Cell, w)
		for x := range row {
			row[x] = screen.Cell{Ch: ' ', FG: screen.White, BG: screen.Black}
		}
		g[y] = row
	}
	return g
}

// Name implements peripheral.Peripheral.
func (m *Monitor) Name() string { return m.name }

// Kind implements peripheral.Peripheral.
func (m *Monitor) Kind() peripheral.Kind { return peripheral.KindMonitor }

// Size implements screen.Device.
func (m *Monitor) Size() (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.w, m.h
}

// BlitRow implements screen.Device.
func (m *Monitor) BlitRow(y int, cells []screen.Cell) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if y < 0 || y >= m.h {
		return nil
	}
	n := copy(m.cells[y], cells)
	for x := n; x < m.w; x++ {
		m.cells[y][x] = screen.Cell{Ch: ' ', FG: screen.White, BG: screen.Black}
	}
	m.gen++
	return nil
}

// SetTextScale records the requested scale. The simulated grid does not
// resize; the console shows the scale in the panel title.
func (m *Monitor) SetTextScale(scale float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scale = scale
}

// TextScale returns the last requested scale.
func (m *Monitor) TextScale() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scale
}

// Snapshot returns a copy of the current frame and a generation counter that
// increments on every blit. The console polls this to decide when to redraw.
func (m *Monitor) Snapshot() (cells [][]screen.Cell, gen uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([][]screen.Cell, m.h)
	for y := range m.cells {
		row := make([]screen.Cell, m.w)
		copy(row, m.cells[y])
		out[y] = row
	}
	return out, m.gen
}

// Row returns the characters of row y, for tests.
func (m *Monitor) Row(y int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if y < 0 || y >= m.h {
		return ""
	}
	r := make([]rune, m.w)
	for x, c := range m.cells[y] {
		r[x] = c.Ch
	}
	return string(r)
}
