package widget

// GridMetrics describes how tiles fit into a window.
type GridMetrics struct {
	Cols, Rows int // grid dimensions in tiles
	TileW      int // tile width in cells, including the trailing gutter
	TileH      int // tile height in rows
	PerPage    int
	Pages      int
}

// GridLayout computes a tile grid for count items in a width x height
// window. minTileW/minTileH are the smallest usable tile; the layout packs
// as many columns as fit and paginates the rest. A window too small for a
// single tile yields one 1x1-tile page so callers need no special case.
func GridLayout(width, height, count, minTileW, minTileH int) GridMetrics {
	if minTileW < 1 {
		minTileW = 1
	}
	if minTileH < 1 {
		minTileH = 1
	}
	cols := width / minTileW
	if cols < 1 {
		cols = 1
	}
	rows := height / minTileH
	if rows < 1 {
		rows = 1
	}
	m := GridMetrics{
		Cols:    cols,
		Rows:    rows,
		TileW:   width / cols,
		TileH:   minTileH,
		PerPage: cols * rows,
	}
	if m.TileW < 1 {
		m.TileW = 1
	}
	m.Pages = pages(count, m.PerPage)
	return m
}

// ListMetrics describes a paginated single-column list.
type ListMetrics struct {
	RowsPerPage int
	Pages       int
}

// ListLayout computes pagination for count rows in a window of the given
// height, with rowHeight cells per entry.
func ListLayout(height, count, rowHeight int) ListMetrics {
	if rowHeight < 1 {
		rowHeight = 1
	}
	per := height / rowHeight
	if per < 1 {
		per = 1
	}
	return ListMetrics{RowsPerPage: per, Pages: pages(count, per)}
}

func pages(count, perPage int) int {
	if count <= 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}

// ClampPage keeps page inside [0, pages-1]. Shrinking data snaps the page
// back instead of leaving the view past the end.
func ClampPage(page, pages int) int {
	if pages < 1 {
		pages = 1
	}
	if page >= pages {
		page = pages - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}
