package view

import (
	"context"
	"fmt"
	"time"

	"craftmon/internal/logging"
	"craftmon/internal/peripheral"
	"craftmon/internal/screen"
	"craftmon/internal/text"
	"craftmon/internal/widget"
)

// Instance binds one view definition to one monitor and owns all mutable
// render state: page position, touch zones, cached data and the
// double-buffered frame.
type Instance struct {
	def     *Definition
	mon     peripheral.Monitor
	opts    Options
	scratch Scratch
	backoff time.Duration

	frame *screen.Frame
	// Cached sub-displays, carved once from the frame.
	headerWin  *screen.Window
	contentWin *screen.Window

	page  int
	zones Zones

	lastItems []interface{}
	lastData  interface{}
	haveData  bool
	lastErr   error
	failUntil time.Time

	now func() time.Time // test hook
}

// NewInstance creates the runtime state for def on mon. backoff is how long
// the instance sits out after a failed fetch.
func NewInstance(def *Definition, mon peripheral.Monitor, opts Options, backoff time.Duration) *Instance {
	fr := screen.NewFrame(mon)
	w, h := fr.Size()
	return &Instance{
		def:        def,
		mon:        mon,
		opts:       opts,
		scratch:    make(Scratch),
		backoff:    backoff,
		frame:      fr,
		headerWin:  fr.Window(0, 0, w, widget.HeaderHeight),
		contentWin: fr.Window(0, widget.HeaderHeight, w, h-widget.HeaderHeight),
		now:        time.Now,
	}
}

// Definition returns the bound descriptor.
func (in *Instance) Definition() *Definition { return in.def }

// Monitor returns the bound monitor.
func (in *Instance) Monitor() peripheral.Monitor { return in.mon }

// Err returns the last fetch error, or nil.
func (in *Instance) Err() error { return in.lastErr }

// Page returns the current page index, for tests.
func (in *Instance) Page() int { return in.page }

// Refresh fetches fresh data and repaints. While a failure backoff is
// active it returns the previous error without touching the device; the
// error banner is already on screen.
func (in *Instance) Refresh(ctx context.Context, p *peripheral.Peripherals) error {
	if in.lastErr != nil && in.now().Before(in.failUntil) {
		return in.lastErr
	}

	items, data, err := in.fetch(ctx, p)
	if err != nil {
		in.fail(err)
		return err
	}
	in.lastItems, in.lastData = items, data
	in.haveData = true
	in.lastErr = nil
	return in.paint()
}

// fetch runs the view's data function with a panic guard: a panicking view
// reports an error instead of killing the loop.
func (in *Instance) fetch(ctx context.Context, p *peripheral.Peripherals) (items []interface{}, data interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("view %s: data fetch panicked: %v", in.def.ID, r)
		}
	}()
	if in.def.Strategy == StrategyCustom {
		data, err = in.def.GetData(ctx, p, in.opts)
		return nil, data, err
	}
	items, err = in.def.GetItems(ctx, p, in.opts)
	return items, nil, err
}

// fail paints the error banner and arms the backoff.
func (in *Instance) fail(err error) {
	in.lastErr = err
	in.failUntil = in.now().Add(in.backoff)
	in.zones.Reset()

	in.frame.Back().Clear(screen.Black)
	in.drawHeader("")
	widget.ErrorBanner(in.contentWin, err.Error())
	if _, ferr := in.frame.Flush(); ferr != nil {
		logging.Get(logging.CategoryRender).Error("view %s: flush failed: %v", in.def.ID, ferr)
	}
}

// MarkLost paints the peripheral-lost banner immediately. The manager calls
// this on detach events so the monitor never shows stale data.
func (in *Instance) MarkLost(kind peripheral.Kind) {
	in.fail(fmt.Errorf("%s: %w", kind, peripheral.ErrDetached))
}

// Repaint redraws from cached data, e.g. after a page change. A no-op
// before the first successful fetch.
func (in *Instance) Repaint() error {
	if !in.haveData || in.lastErr != nil {
		return nil
	}
	return in.paint()
}

// HandleTouch dispatches a touch in monitor cell coordinates against the
// zones of the frame currently on screen. It returns true when the touch hit
// a zone; the repaint already happened.
func (in *Instance) HandleTouch(x, y int) bool {
	z, ok := in.zones.Hit(x, y)
	if !ok {
		return false
	}
	logging.Touch("view %s: %s at %d,%d", in.def.ID, z.Action, x, y)
	switch z.Action {
	case ActionPagePrev:
		in.page--
	case ActionPageNext:
		in.page++
	case ActionSelect:
		if z.Index >= 0 && z.Index < len(in.lastItems) && in.def.OnSelect != nil {
			in.def.OnSelect(in.lastItems[z.Index], in.scratch)
		}
	default:
		return false
	}
	if err := in.Repaint(); err != nil {
		logging.Get(logging.CategoryRender).Error("view %s: repaint failed: %v", in.def.ID, err)
	}
	return true
}

// paint runs the render phases: clear, header, body by strategy, footer,
// flush. The device only ever sees the flushed diff.
func (in *Instance) paint() error {
	t := logging.StartTimer(logging.CategoryRender, fmt.Sprintf("render %s", in.def.ID))
	defer t.StopWithThreshold(50 * time.Millisecond)

	in.frame.Back().Clear(screen.Black)
	in.zones.Reset()

	status := ""
	if in.def.Status != nil {
		if in.def.Strategy == StrategyCustom {
			status = in.def.Status(in.lastData, in.scratch)
		} else {
			status = in.def.Status(in.lastItems, in.scratch)
		}
	}
	in.drawHeader(status)

	switch in.def.Strategy {
	case StrategyList:
		in.paintList(false)
	case StrategyInteractive:
		in.paintList(true)
	case StrategyGrid:
		in.paintGrid()
	case StrategyCustom:
		in.def.Render(&Canvas{Win: in.contentWin, Opts: in.opts, Scratch: in.scratch}, in.lastData)
	}

	rows, err := in.frame.Flush()
	if err != nil {
		return fmt.Errorf("view %s: flush: %w", in.def.ID, err)
	}
	logging.RenderDebug("view %s: flushed %d rows", in.def.ID, rows)
	return nil
}

func (in *Instance) drawHeader(status string) {
	widget.Header(in.headerWin, in.def.Title, status, screen.White, screen.Blue)
}

// paintList draws the list and interactive-list strategies. Rows are one
// cell high; a footer band appears when the items overflow one page or the
// view declares footer text.
func (in *Instance) paintList(interactive bool) {
	w, h := in.contentWin.Size()
	avail := h
	if in.def.Footer != nil {
		avail = h - widget.FooterHeight
	}
	metrics := widget.ListLayout(avail, len(in.lastItems), 1)
	if metrics.Pages > 1 && avail == h {
		metrics = widget.ListLayout(h-widget.FooterHeight, len(in.lastItems), 1)
	}
	in.page = widget.ClampPage(in.page, metrics.Pages)

	_, originY := in.contentWin.Origin()
	start := in.page * metrics.RowsPerPage
	for row := 0; row < metrics.RowsPerPage; row++ {
		idx := start + row
		if idx >= len(in.lastItems) {
			break
		}
		line := in.def.FormatItem(in.lastItems[idx], w)
		bg := line.BG
		if interactive && row%2 == 1 && bg == screen.Black {
			bg = screen.Gray // stripe touchable rows so targets are visible
		}
		in.contentWin.FillRow(row, ' ', line.FG, bg)
		in.contentWin.WriteString(0, row, text.Truncate(line.Text, w), line.FG, bg)
		if interactive {
			in.zones.Add(Zone{X: 0, Y: originY + row, W: w, H: 1, Action: ActionSelect, Index: idx})
		}
	}

	if metrics.Pages > 1 {
		in.paintFooter(metrics.Pages, h-widget.FooterHeight)
	} else {
		in.paintFooterText(h - widget.FooterHeight)
	}
}

// paintGrid draws the grid strategy: tiles packed into columns, paginated.
func (in *Instance) paintGrid() {
	w, h := in.contentWin.Size()
	minW, minH := in.def.TileMinW, in.def.TileMinH
	if minW <= 0 {
		minW = 12
	}
	if minH <= 0 {
		minH = 3
	}
	availH := h
	if in.def.Footer != nil {
		availH = h - widget.FooterHeight
	}
	metrics := widget.GridLayout(w, availH, len(in.lastItems), minW, minH)
	if metrics.Pages > 1 && availH == h {
		metrics = widget.GridLayout(w, h-widget.FooterHeight, len(in.lastItems), minW, minH)
	}
	in.page = widget.ClampPage(in.page, metrics.Pages)

	start := in.page * metrics.PerPage
	for cell := 0; cell < metrics.PerPage; cell++ {
		idx := start + cell
		if idx >= len(in.lastItems) {
			break
		}
		col := cell % metrics.Cols
		row := cell / metrics.Cols
		tileWin := in.contentWin.Sub(col*metrics.TileW, row*metrics.TileH, metrics.TileW-1, metrics.TileH)
		tw, _ := tileWin.Size()
		tile := in.def.FormatTile(in.lastItems[idx], tw)

		tileWin.FillRow(0, ' ', tile.Title.FG, tile.Title.BG)
		tileWin.WriteString(0, 0, text.Truncate(tile.Title.Text, tw), tile.Title.FG, tile.Title.BG)
		for i, line := range tile.Lines {
			if i+1 >= metrics.TileH {
				break
			}
			tileWin.WriteString(0, i+1, text.Truncate(line.Text, tw), line.FG, line.BG)
		}
	}

	if metrics.Pages > 1 {
		in.paintFooter(metrics.Pages, h-widget.FooterHeight)
	} else {
		in.paintFooterText(h - widget.FooterHeight)
	}
}

// paintFooterText draws the view's declared footer text, if any.
func (in *Instance) paintFooterText(contentY int) {
	if in.def.Footer == nil {
		return
	}
	txt := in.def.Footer(in.lastItems, in.scratch)
	if txt == "" {
		return
	}
	w, _ := in.contentWin.Size()
	footWin := in.contentWin.Sub(0, contentY, w, widget.FooterHeight)
	widget.FooterText(footWin, txt, screen.White, screen.Gray)
}

// paintFooter draws the pagination band at contentY and registers the
// prev/next touch zones over the arrow glyphs.
func (in *Instance) paintFooter(pages, contentY int) {
	w, _ := in.contentWin.Size()
	footWin := in.contentWin.Sub(0, contentY, w, widget.FooterHeight)
	widget.Footer(footWin, in.page, pages, screen.White, screen.Gray)

	_, originY := in.contentWin.Origin()
	y := originY + contentY
	if in.page > 0 {
		in.zones.Add(Zone{X: 0, Y: y, W: len(widget.PrevGlyph) + 1, H: 1, Action: ActionPagePrev})
	}
	if in.page < pages-1 {
		in.zones.Add(Zone{X: w - len(widget.NextGlyph) - 1, Y: y, W: len(widget.NextGlyph) + 1, H: 1, Action: ActionPageNext})
	}
}
