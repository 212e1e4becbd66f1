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

// Crafting shows each ME crafting CPU as a tile: busy CPUs carry the job
// name and a progress bar, idle ones just their storage size.
func Crafting() *view.Definition {
	return &view.Definition{
		ID:       "crafting",
		Title:    "Crafting",
		Strategy: view.StrategyGrid,
		Requires: []peripheral.Kind{peripheral.KindMEBridge},
		Refresh:  500 * time.Millisecond,
		TileMinW: 14,
		TileMinH: 4,
		Schema: []view.OptionSpec{
			{Key: "busy_first", Type: view.OptionBool, Default: true, Description: "sort busy CPUs to the front"},
			{Key: "busy_color", Type: view.OptionColor, Default: "lime", Description: "tile title color while crafting"},
		},
		GetItems:   craftingFetch,
		FormatTile: craftingTile,
		Status: func(data interface{}, scratch view.Scratch) string {
			items, _ := data.([]interface{})
			busy := 0
			for _, it := range items {
				if it.(craftingCell).Busy {
					busy++
				}
			}
			return fmt.Sprintf("%d/%d busy", busy, len(items))
		},
	}
}

type craftingCell struct {
	peripheral.CraftingCPU
	TitleBG screen.Color
}

func craftingFetch(ctx context.Context, p *peripheral.Peripherals, opts view.Options) ([]interface{}, error) {
	bridge, err := p.MEBridge()
	if err != nil {
		return nil, err
	}
	cpus, err := bridge.CraftingCPUs(ctx)
	if err != nil {
		return nil, fmt.Errorf("crafting cpus: %w", err)
	}

	sort.Slice(cpus, func(i, j int) bool { return cpus[i].Name < cpus[j].Name })
	if opts.Bool("busy_first", true) {
		sort.SliceStable(cpus, func(i, j int) bool { return cpus[i].Busy && !cpus[j].Busy })
	}

	busyBG := opts.Color("busy_color", screen.Lime)
	out := make([]interface{}, len(cpus))
	for i, cpu := range cpus {
		bg := screen.Gray
		if cpu.Busy {
			bg = busyBG
		}
		out[i] = craftingCell{CraftingCPU: cpu, TitleBG: bg}
	}
	return out, nil
}

func craftingTile(item interface{}, width int) view.Tile {
	cell := item.(craftingCell)
	tile := view.Tile{
		Title: view.Line{Text: cell.Name, FG: screen.Black, BG: cell.TitleBG},
	}
	if cell.Job == nil {
		tile.Lines = []view.Line{
			{Text: "idle", FG: screen.LightGray, BG: screen.Black},
			{Text: text.CompactNumber(cell.Storage) + " storage", FG: screen.Gray, BG: screen.Black},
		}
		return tile
	}

	job := cell.Job
	tile.Lines = []view.Line{
		{Text: fmt.Sprintf("%dx %s", job.Quantity, text.TitleCase(job.Item)), FG: screen.White, BG: screen.Black},
		{Text: barString(job.Progress, width-5) + text.PadLeft(text.Percent(job.Progress), 5), FG: screen.Lime, BG: screen.Black},
	}
	return tile
}
