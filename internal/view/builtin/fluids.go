package builtin

import (
	"context"
	"fmt"
	"sort"
	"time"

	"craftmon/internal/peripheral"
	"craftmon/internal/screen"
	"craftmon/internal/text"
	"craftmon/internal/view"
)

// Fluids lists the tanks of a fluid store, one row per tank with an inline
// fill bar. Rows go red as tanks approach full since overflow voids fluid.
func Fluids() *view.Definition {
	return &view.Definition{
		ID:       "fluids",
		Title:    "Fluids",
		Strategy: view.StrategyList,
		Requires: []peripheral.Kind{peripheral.KindFluidStore},
		Refresh:  time.Second,
		Schema: []view.OptionSpec{
			{Key: "sort", Type: view.OptionString, Default: "amount", Description: "amount or name"},
			{Key: "full_at", Type: view.OptionInt, Default: 90, Description: "percent at which a tank row turns red"},
		},
		GetItems:   fluidsFetch,
		FormatItem: fluidsFormat,
		Status: func(data interface{}, scratch view.Scratch) string {
			items, _ := data.([]interface{})
			return fmt.Sprintf("%d tanks", len(items))
		},
		Footer: func(data interface{}, scratch view.Scratch) string {
			items, _ := data.([]interface{})
			var amount, capacity int64
			for _, it := range items {
				row := it.(fluidRow)
				amount += row.Amount
				capacity += row.Capacity
			}
			if capacity == 0 {
				return ""
			}
			return fmt.Sprintf("total %s / %s", text.CompactNumber(amount), text.CompactNumber(capacity))
		},
	}
}

type fluidRow struct {
	peripheral.Tank
	Frac float64
	FG   screen.Color
}

func fluidsFetch(ctx context.Context, p *peripheral.Peripherals, opts view.Options) ([]interface{}, error) {
	store, err := p.FluidStore()
	if err != nil {
		return nil, err
	}
	tanks, err := store.Tanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fluids: %w", err)
	}

	switch opts.String("sort", "amount") {
	case "name":
		sort.Slice(tanks, func(i, j int) bool { return tanks[i].Fluid < tanks[j].Fluid })
	default:
		sort.Slice(tanks, func(i, j int) bool {
			if tanks[i].Amount != tanks[j].Amount {
				return tanks[i].Amount > tanks[j].Amount
			}
			return tanks[i].Fluid < tanks[j].Fluid
		})
	}

	fullAt := float64(opts.Int("full_at", 90)) / 100
	out := make([]interface{}, len(tanks))
	for i, tank := range tanks {
		frac := 0.0
		if tank.Capacity > 0 {
			frac = float64(tank.Amount) / float64(tank.Capacity)
		}
		fg := screen.White
		if frac >= fullAt {
			fg = screen.Red
		}
		out[i] = fluidRow{Tank: tank, Frac: frac, FG: fg}
	}
	return out, nil
}

func fluidsFormat(item interface{}, width int) view.Line {
	row := item.(fluidRow)
	name := text.TitleCase(row.Fluid)
	pct := text.PadLeft(text.Percent(row.Frac), 4)

	// Name takes the left half, the bar and percent split the rest.
	nameW := width / 2
	if nameW > 14 {
		nameW = 14
	}
	barW := width - nameW - len(pct) - 2
	bar := ""
	if barW >= 4 {
		bar = " " + barString(row.Frac, barW)
	}
	return view.Line{
		Text: text.Pad(name, nameW) + bar + " " + pct,
		FG:   row.FG,
		BG:   screen.Black,
	}
}
