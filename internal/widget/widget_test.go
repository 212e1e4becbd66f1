package widget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftmon/internal/screen"
)

func window(w, h int) (*screen.Buffer, *screen.Window) {
	b := screen.NewBuffer(w, h)
	return b, screen.NewWindow(b, 0, 0, w, h)
}

func TestBar_FillFraction(t *testing.T) {
	b, w := window(10, 1)
	Bar(w, 0, 0, 10, 0.5, screen.Green, screen.Gray)

	for x := 0; x < 5; x++ {
		assert.Equal(t, screen.Green, b.At(x, 0).BG, "cell %d should be filled", x)
	}
	for x := 5; x < 10; x++ {
		assert.Equal(t, screen.Gray, b.At(x, 0).BG, "cell %d should be empty", x)
	}
}

func TestBar_ClampsFraction(t *testing.T) {
	b, w := window(4, 1)
	Bar(w, 0, 0, 4, 1.8, screen.Green, screen.Gray)
	for x := 0; x < 4; x++ {
		assert.Equal(t, screen.Green, b.At(x, 0).BG)
	}

	Bar(w, 0, 0, 4, -0.3, screen.Green, screen.Gray)
	for x := 0; x < 4; x++ {
		assert.Equal(t, screen.Gray, b.At(x, 0).BG)
	}
}

func TestLabeledBar(t *testing.T) {
	b, w := window(10, 1)
	LabeledBar(w, 0, 0, 10, 0.5, "42%", screen.Green, screen.Gray)
	assert.Equal(t, "   42%    ", b.Row(0))
	// Label cells over the filled half get the inverted foreground.
	assert.Equal(t, screen.Black, b.At(3, 0).FG)
}

func TestBarColor(t *testing.T) {
	assert.Equal(t, screen.Red, BarColor(0.05, 0.1, 0.3))
	assert.Equal(t, screen.Orange, BarColor(0.2, 0.1, 0.3))
	assert.Equal(t, screen.Green, BarColor(0.9, 0.1, 0.3))
}

func TestHistory_Ring(t *testing.T) {
	h := NewHistory(3)
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 0.0, h.Last())

	h.Push(1)
	h.Push(2)
	h.Push(3)
	h.Push(4) // evicts 1

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []float64{2, 3, 4}, h.Values())
	assert.Equal(t, 4.0, h.Last())
}

func TestGraph_RightAligned(t *testing.T) {
	b, w := window(8, 1)
	h := NewHistory(16)
	h.Push(1)
	h.Push(8)

	Graph(w, 0, 0, 8, h, screen.Lime)

	// Two samples occupy the two rightmost cells.
	assert.Equal(t, ' ', b.At(5, 0).Ch)
	assert.Equal(t, '▁', b.At(6, 0).Ch)
	assert.Equal(t, '█', b.At(7, 0).Ch)
}

func TestGraph_FlatZeroSeriesIsBlank(t *testing.T) {
	b, w := window(4, 1)
	h := NewHistory(4)
	h.Push(0)
	h.Push(0)
	Graph(w, 0, 0, 4, h, screen.Lime)
	assert.Equal(t, "    ", b.Row(0))
}

func TestGraphRows_ColumnFill(t *testing.T) {
	b, w := window(4, 2)
	h := NewHistory(4)
	h.Push(1)   // minimal
	h.Push(100) // full column

	GraphRows(w, 0, 0, 4, 2, h, screen.Lime)

	// Full-scale sample fills both rows of the last column.
	assert.Equal(t, '█', b.At(3, 0).Ch)
	assert.Equal(t, '█', b.At(3, 1).Ch)
	// Tiny sample shows only in the bottom row.
	assert.Equal(t, ' ', b.At(2, 0).Ch)
	assert.NotEqual(t, ' ', b.At(2, 1).Ch)
}

func TestHeaderAndFooter(t *testing.T) {
	b, w := window(12, 1)
	Header(w, "Energy", "", screen.White, screen.Blue)
	assert.Equal(t, "   Energy   ", b.Row(0))
	assert.Equal(t, screen.Blue, b.At(0, 0).BG)

	b2, w2 := window(12, 1)
	Footer(w2, 0, 3, screen.White, screen.Gray)
	row := b2.Row(0)
	assert.True(t, strings.HasPrefix(row, PrevGlyph))
	assert.True(t, strings.HasSuffix(row, NextGlyph))
	assert.Contains(t, row, "1/3")
	// First page: prev arrow dimmed, next arrow active.
	assert.Equal(t, screen.Gray, b2.At(0, 0).FG)
	assert.Equal(t, screen.White, b2.At(10, 0).FG)
}

func TestFooterText(t *testing.T) {
	b, w := window(20, 1)
	FooterText(w, "total 1.2M / 4M", screen.White, screen.Gray)
	assert.Contains(t, b.Row(0), "total 1.2M / 4M")
	assert.Equal(t, screen.Gray, b.At(0, 0).BG)
}

func TestErrorBanner(t *testing.T) {
	b, w := window(12, 3)
	ErrorBanner(w, "me_bridge: peripheral not present")
	assert.Equal(t, screen.Red, b.At(0, 0).BG)
	joined := b.Row(0) + b.Row(1) + b.Row(2)
	assert.Contains(t, strings.Join(strings.Fields(joined), " "), "me_bridge")
}

func TestGridLayout(t *testing.T) {
	m := GridLayout(30, 10, 13, 10, 5)
	require.Equal(t, 3, m.Cols)
	require.Equal(t, 2, m.Rows)
	assert.Equal(t, 10, m.TileW)
	assert.Equal(t, 6, m.PerPage)
	assert.Equal(t, 3, m.Pages)
}

func TestGridLayout_TinyWindow(t *testing.T) {
	m := GridLayout(4, 2, 9, 10, 5)
	assert.Equal(t, 1, m.Cols)
	assert.Equal(t, 1, m.Rows)
	assert.Equal(t, 9, m.Pages)
}

func TestListLayout(t *testing.T) {
	m := ListLayout(8, 20, 1)
	assert.Equal(t, 8, m.RowsPerPage)
	assert.Equal(t, 3, m.Pages)

	empty := ListLayout(8, 0, 1)
	assert.Equal(t, 1, empty.Pages)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 0, ClampPage(-2, 5))
	assert.Equal(t, 4, ClampPage(9, 5))
	assert.Equal(t, 2, ClampPage(2, 5))
	assert.Equal(t, 0, ClampPage(3, 0))
}
