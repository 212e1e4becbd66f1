package builtin

import (
	"context"
	"sort"
	"time"

	"craftmon/internal/peripheral"
	"craftmon/internal/screen"
	"craftmon/internal/text"
	"craftmon/internal/view"
)

const statusStartKey = "started"

// statusData is the bus inventory at fetch time.
type statusData struct {
	ByKind map[peripheral.Kind][]string
	Total  int
}

// Status is a custom overview that mounts on any monitor: what is attached
// to the bus, grouped by kind, plus uptime in the header. Handy as the
// auto-assign fallback for monitors with no explicit view.
func Status() *view.Definition {
	return &view.Definition{
		ID:       "status",
		Title:    "Status",
		Strategy: view.StrategyCustom,
		Refresh:  2 * time.Second,
		// No Requires: this view must mount even on an empty bus.
		GetData: func(ctx context.Context, p *peripheral.Peripherals, opts view.Options) (interface{}, error) {
			data := statusData{ByKind: make(map[peripheral.Kind][]string)}
			for _, name := range p.Bus().Names() {
				dev, ok := p.Bus().Lookup(name)
				if !ok {
					continue
				}
				data.ByKind[dev.Kind()] = append(data.ByKind[dev.Kind()], name)
				data.Total++
			}
			return data, nil
		},
		Render: statusRender,
		Status: func(data interface{}, scratch view.Scratch) string {
			started, ok := scratch[statusStartKey].(time.Time)
			if !ok {
				started = time.Now()
				scratch[statusStartKey] = started
			}
			return "up " + text.ShortDuration(time.Since(started))
		},
	}
}

func statusRender(c *view.Canvas, data interface{}) {
	inv, ok := data.(statusData)
	if !ok {
		return
	}
	w, h := c.Win.Size()

	if inv.Total == 0 {
		c.Win.WriteString(0, 0, text.Truncate("no peripherals attached", w), screen.Orange, screen.Black)
		return
	}

	kinds := make([]peripheral.Kind, 0, len(inv.ByKind))
	for k := range inv.ByKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	y := 0
	for _, k := range kinds {
		if y >= h {
			break
		}
		names := inv.ByKind[k]
		label := text.TitleCase(string(k))
		c.Win.WriteString(0, y, text.Truncate(label, w), screen.Yellow, screen.Black)
		c.Win.WriteString(w-3, y, text.PadLeft(text.CompactNumber(int64(len(names))), 3), screen.White, screen.Black)
		y++
		for _, name := range names {
			if y >= h {
				break
			}
			c.Win.WriteString(1, y, text.Truncate(name, w-1), screen.LightGray, screen.Black)
			y++
		}
	}
}
