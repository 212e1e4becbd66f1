package builtin

import (
	"context"
	"fmt"
	"time"

	"craftmon/internal/peripheral"
	"craftmon/internal/screen"
	"craftmon/internal/text"
	"craftmon/internal/view"
	"craftmon/internal/widget"
)

const energyHistoryKey = "net_history"

// energySnapshot is the fetched reading plus the derived fill fraction.
type energySnapshot struct {
	peripheral.EnergyStats
	Frac float64
}

// Energy is a custom dashboard for an energy cell: stored level with a
// colored bar, in/out flow and a sparkline of recent net inflow kept in
// scratch between renders. Drain shows as a gap in the sparkline and as a
// red net readout; the graph itself only plots inflow.
func Energy() *view.Definition {
	return &view.Definition{
		ID:       "energy",
		Title:    "Energy",
		Strategy: view.StrategyCustom,
		Requires: []peripheral.Kind{peripheral.KindEnergyStore},
		Refresh:  500 * time.Millisecond,
		Schema: []view.OptionSpec{
			{Key: "low_at", Type: view.OptionInt, Default: 15, Description: "red bar threshold, percent"},
			{Key: "warn_at", Type: view.OptionInt, Default: 40, Description: "orange bar threshold, percent"},
			{Key: "history", Type: view.OptionInt, Default: 120, Description: "net inflow samples to retain"},
		},
		GetData: func(ctx context.Context, p *peripheral.Peripherals, opts view.Options) (interface{}, error) {
			store, err := p.EnergyStore()
			if err != nil {
				return nil, err
			}
			stats, err := store.Energy(ctx)
			if err != nil {
				return nil, fmt.Errorf("energy: %w", err)
			}
			frac := 0.0
			if stats.Capacity > 0 {
				frac = float64(stats.Stored) / float64(stats.Capacity)
			}
			return energySnapshot{EnergyStats: stats, Frac: frac}, nil
		},
		Render: energyRender,
		Status: func(data interface{}, scratch view.Scratch) string {
			snap, ok := data.(energySnapshot)
			if !ok {
				return ""
			}
			return text.Percent(snap.Frac)
		},
	}
}

func energyRender(c *view.Canvas, data interface{}) {
	snap, ok := data.(energySnapshot)
	if !ok {
		return
	}
	w, h := c.Win.Size()

	hist, ok := c.Scratch[energyHistoryKey].(*widget.History)
	if !ok {
		hist = widget.NewHistory(c.Opts.Int("history", 120))
		c.Scratch[energyHistoryKey] = hist
	}
	// The sparkline scales to the positive max, so a negative sample would
	// draw the same as zero. Clamp to zero and let the flow readout below
	// carry the sign.
	net := float64(snap.Input - snap.Output)
	hist.Push(max(net, 0))

	// Row 0: stored / capacity readout.
	stored := fmt.Sprintf("%s / %s", text.CompactNumber(snap.Stored), text.CompactNumber(snap.Capacity))
	c.Win.WriteString(0, 0, text.Truncate(stored, w), screen.White, screen.Black)

	// Row 1: fill bar colored by level.
	lowAt := float64(c.Opts.Int("low_at", 15)) / 100
	warnAt := float64(c.Opts.Int("warn_at", 40)) / 100
	fill := widget.BarColor(snap.Frac, lowAt, warnAt)
	widget.LabeledBar(c.Win, 0, 1, w, snap.Frac, text.Percent(snap.Frac), fill, screen.Gray)

	// Row 2: flow readout. Net direction decides the color.
	flowFG := screen.Green
	arrow := "+"
	if net < 0 {
		flowFG = screen.Red
		arrow = "-"
	}
	flow := fmt.Sprintf("in %s  out %s  net %s%s",
		text.CompactNumber(snap.Input), text.CompactNumber(snap.Output),
		arrow, text.CompactNumber(int64(abs(net))))
	c.Win.WriteString(0, 2, text.Truncate(flow, w), flowFG, screen.Black)

	// Remaining rows: net inflow sparkline, as tall as the window allows.
	if rows := h - 3; rows >= 1 {
		widget.GraphRows(c.Win, 0, 3, w, rows, hist, screen.LightBlue)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
