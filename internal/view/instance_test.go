package view

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftmon/internal/peripheral"
	"craftmon/internal/peripheral/sim"
	"craftmon/internal/screen"
)

func testSetup(t *testing.T, w, h int) (*sim.Monitor, *peripheral.Peripherals) {
	t.Helper()
	bus := sim.NewBus()
	mon := sim.NewMonitor("monitor_0", w, h)
	bus.Attach(mon)
	return mon, peripheral.NewPeripherals(bus)
}

func itemsDef(items func() []interface{}) *Definition {
	return &Definition{
		ID:       "items",
		Title:    "Items",
		Strategy: StrategyList,
		GetItems: func(ctx context.Context, p *peripheral.Peripherals, opts Options) ([]interface{}, error) {
			return items(), nil
		},
		FormatItem: func(item interface{}, width int) Line {
			return Line{Text: item.(string), FG: screen.White, BG: screen.Black}
		},
	}
}

func nItems(n int) []interface{} {
	out := make([]interface{}, n)
	for i := range out {
		out[i] = fmt.Sprintf("item_%02d", i)
	}
	return out
}

func TestInstance_ListPagination(t *testing.T) {
	mon, p := testSetup(t, 20, 10)
	data := nItems(30)
	in := NewInstance(itemsDef(func() []interface{} { return data }), mon, nil, time.Second)

	require.NoError(t, in.Refresh(context.Background(), p))

	// Header row plus first page of items.
	assert.Contains(t, mon.Row(0), "Items")
	assert.Contains(t, mon.Row(1), "item_00")
	// Footer with page indicator on the last row.
	assert.Contains(t, mon.Row(9), "1/4")

	// Touch the next-page arrow (right edge of the footer row).
	require.True(t, in.HandleTouch(18, 9))
	assert.Equal(t, 1, in.Page())
	assert.Contains(t, mon.Row(1), "item_08")
	assert.Contains(t, mon.Row(9), "2/4")

	// Prev arrow goes back.
	require.True(t, in.HandleTouch(0, 9))
	assert.Equal(t, 0, in.Page())

	// Prev on the first page is not a zone at all.
	assert.False(t, in.HandleTouch(0, 9) && in.Page() < 0)
	assert.Equal(t, 0, in.Page())
}

func TestInstance_PageClampsWhenDataShrinks(t *testing.T) {
	mon, p := testSetup(t, 20, 10)
	data := nItems(30)
	in := NewInstance(itemsDef(func() []interface{} { return data }), mon, nil, time.Second)

	ctx := context.Background()
	require.NoError(t, in.Refresh(ctx, p))
	require.True(t, in.HandleTouch(18, 9)) // page 1
	require.True(t, in.HandleTouch(18, 9)) // page 2
	require.Equal(t, 2, in.Page())

	data = nItems(5)
	require.NoError(t, in.Refresh(ctx, p))
	assert.Equal(t, 0, in.Page())
	assert.Contains(t, mon.Row(1), "item_00")
	// Five items fit on one page: no footer.
	assert.NotContains(t, mon.Row(9), "/")
}

func TestInstance_FooterHookOnSinglePage(t *testing.T) {
	mon, p := testSetup(t, 20, 10)
	def := itemsDef(func() []interface{} { return nItems(3) })
	def.Footer = func(data interface{}, scratch Scratch) string {
		return fmt.Sprintf("%d items", len(data.([]interface{})))
	}
	in := NewInstance(def, mon, nil, time.Second)
	require.NoError(t, in.Refresh(context.Background(), p))

	assert.Contains(t, mon.Row(9), "3 items")
	// The band is not a touch target.
	assert.False(t, in.HandleTouch(10, 9))
}

func TestInstance_SinglePageHasNoFooterZones(t *testing.T) {
	mon, p := testSetup(t, 20, 10)
	in := NewInstance(itemsDef(func() []interface{} { return nItems(3) }), mon, nil, time.Second)
	require.NoError(t, in.Refresh(context.Background(), p))
	assert.False(t, in.HandleTouch(18, 9))
	assert.False(t, in.HandleTouch(0, 9))
}

func TestInstance_InteractiveSelect(t *testing.T) {
	mon, p := testSetup(t, 20, 10)
	var selected string
	def := &Definition{
		ID:       "pick",
		Title:    "Pick",
		Strategy: StrategyInteractive,
		GetItems: func(ctx context.Context, p *peripheral.Peripherals, opts Options) ([]interface{}, error) {
			return nItems(4), nil
		},
		FormatItem: func(item interface{}, width int) Line {
			return Line{Text: item.(string), FG: screen.White, BG: screen.Black}
		},
		OnSelect: func(item interface{}, scratch Scratch) {
			selected = item.(string)
			scratch["pinned"] = item
		},
		Status: func(data interface{}, scratch Scratch) string {
			if v, ok := scratch["pinned"].(string); ok {
				return v
			}
			return ""
		},
	}
	in := NewInstance(def, mon, nil, time.Second)
	require.NoError(t, in.Refresh(context.Background(), p))

	// Rows start under the header; touch the third row.
	require.True(t, in.HandleTouch(5, 3))
	assert.Equal(t, "item_02", selected)

	// Selection is pinned into the header via scratch on the repaint.
	assert.Contains(t, mon.Row(0), "item_02")

	// A touch outside any zone is not consumed.
	assert.False(t, in.HandleTouch(5, 8))
}

func TestInstance_GridRendersTiles(t *testing.T) {
	mon, p := testSetup(t, 26, 8)
	def := &Definition{
		ID:       "cpus",
		Title:    "CPUs",
		Strategy: StrategyGrid,
		TileMinW: 12,
		TileMinH: 3,
		GetItems: func(ctx context.Context, p *peripheral.Peripherals, opts Options) ([]interface{}, error) {
			return nItems(4), nil
		},
		FormatTile: func(item interface{}, width int) Tile {
			return Tile{
				Title: Line{Text: item.(string), FG: screen.Black, BG: screen.Lime},
				Lines: []Line{{Text: "idle", FG: screen.Gray, BG: screen.Black}},
			}
		},
	}
	in := NewInstance(def, mon, nil, time.Second)
	require.NoError(t, in.Refresh(context.Background(), p))

	// Two tiles in the first tile row: titles on row 1, details on row 2.
	assert.Contains(t, mon.Row(1), "item_00")
	assert.Contains(t, mon.Row(1), "item_01")
	assert.Contains(t, mon.Row(2), "idle")
	// Second tile row.
	assert.Contains(t, mon.Row(4), "item_02")
}

func TestInstance_FetchErrorShowsBannerAndBacksOff(t *testing.T) {
	mon, p := testSetup(t, 24, 8)
	calls := 0
	def := itemsDef(func() []interface{} { return nil })
	def.GetItems = func(ctx context.Context, p *peripheral.Peripherals, opts Options) ([]interface{}, error) {
		calls++
		return nil, fmt.Errorf("me_bridge: %w", peripheral.ErrNotPresent)
	}

	in := NewInstance(def, mon, nil, 5*time.Second)
	base := time.Unix(1000, 0)
	in.now = func() time.Time { return base }

	err := in.Refresh(context.Background(), p)
	require.Error(t, err)
	require.Equal(t, 1, calls)

	all := ""
	for y := 0; y < 8; y++ {
		all += mon.Row(y)
	}
	assert.Contains(t, strings.Join(strings.Fields(all), " "), "me_bridge")

	// Within the backoff window the fetch is not retried.
	base = base.Add(2 * time.Second)
	err = in.Refresh(context.Background(), p)
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	// After the backoff the fetch runs again.
	base = base.Add(4 * time.Second)
	_ = in.Refresh(context.Background(), p)
	assert.Equal(t, 2, calls)
}

func TestInstance_PanickingViewIsContained(t *testing.T) {
	mon, p := testSetup(t, 24, 8)
	def := itemsDef(func() []interface{} { return nil })
	def.GetItems = func(ctx context.Context, p *peripheral.Peripherals, opts Options) ([]interface{}, error) {
		panic("bad index")
	}

	in := NewInstance(def, mon, nil, time.Second)
	err := in.Refresh(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestInstance_CustomViewScratchPersists(t *testing.T) {
	mon, p := testSetup(t, 24, 8)
	def := &Definition{
		ID:       "counter",
		Title:    "Counter",
		Strategy: StrategyCustom,
		GetData: func(ctx context.Context, p *peripheral.Peripherals, opts Options) (interface{}, error) {
			return 1, nil
		},
		Render: func(c *Canvas, data interface{}) {
			n, _ := c.Scratch["renders"].(int)
			n++
			c.Scratch["renders"] = n
			c.Win.WriteString(0, 0, fmt.Sprintf("renders=%d", n), screen.White, screen.Black)
		},
	}
	in := NewInstance(def, mon, nil, time.Second)

	ctx := context.Background()
	require.NoError(t, in.Refresh(ctx, p))
	require.NoError(t, in.Refresh(ctx, p))
	assert.Contains(t, mon.Row(1), "renders=2")
}

func TestInstance_MarkLost(t *testing.T) {
	mon, p := testSetup(t, 24, 8)
	in := NewInstance(itemsDef(func() []interface{} { return nItems(2) }), mon, nil, time.Second)
	require.NoError(t, in.Refresh(context.Background(), p))

	in.MarkLost(peripheral.KindMEBridge)
	require.Error(t, in.Err())
	all := ""
	for y := 0; y < 8; y++ {
		all += mon.Row(y)
	}
	assert.Contains(t, strings.Join(strings.Fields(all), " "), "detached")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(listDef("b")))
	require.NoError(t, r.Register(listDef("a")))

	assert.ErrorContains(t, r.Register(listDef("a")), "already registered")

	bad := listDef("c")
	bad.FormatItem = nil
	assert.Error(t, r.Register(bad))

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)

	_, ok := r.Get("b")
	assert.True(t, ok)
	_, ok = r.Get("zzz")
	assert.False(t, ok)
}
