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

// MEItems lists the contents of the ME network, largest stacks first.
// Touching a row pins that item into the header so its count can be watched
// while the list keeps scrolling underneath.
func MEItems() *view.Definition {
	return &view.Definition{
		ID:       "meitems",
		Title:    "ME Items",
		Strategy: view.StrategyInteractive,
		Requires: []peripheral.Kind{peripheral.KindMEBridge},
		Refresh:  time.Second,
		Schema: []view.OptionSpec{
			{Key: "limit", Type: view.OptionInt, Default: 200, Description: "max items to list"},
			{Key: "sort", Type: view.OptionString, Default: "count", Description: "count or name"},
			{Key: "craftable_only", Type: view.OptionBool, Default: false, Description: "hide non-craftable items"},
			{Key: "craftable_color", Type: view.OptionColor, Default: "yellow", Description: "row color for craftable items"},
		},
		GetItems:   meItemsFetch,
		FormatItem: meItemsFormat,
		OnSelect: func(item interface{}, scratch view.Scratch) {
			stack := item.(meItemsRow)
			if pinned, ok := scratch["pinned"].(string); ok && pinned == stack.Name {
				delete(scratch, "pinned") // second touch unpins
				return
			}
			scratch["pinned"] = stack.Name
		},
		Status: meItemsStatus,
	}
}

// meItemsRow carries the per-row color decided at fetch time so FormatItem
// stays a pure width-to-line mapping.
type meItemsRow struct {
	peripheral.ItemStack
	FG screen.Color
}

func meItemsFetch(ctx context.Context, p *peripheral.Peripherals, opts view.Options) ([]interface{}, error) {
	bridge, err := p.MEBridge()
	if err != nil {
		return nil, err
	}
	stacks, err := bridge.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("me items: %w", err)
	}

	if opts.Bool("craftable_only", false) {
		kept := stacks[:0]
		for _, s := range stacks {
			if s.Craftable {
				kept = append(kept, s)
			}
		}
		stacks = kept
	}

	switch opts.String("sort", "count") {
	case "name":
		sort.Slice(stacks, func(i, j int) bool { return stacks[i].DisplayName < stacks[j].DisplayName })
	default:
		sort.Slice(stacks, func(i, j int) bool {
			if stacks[i].Count != stacks[j].Count {
				return stacks[i].Count > stacks[j].Count
			}
			return stacks[i].DisplayName < stacks[j].DisplayName
		})
	}

	if limit := opts.Int("limit", 200); limit > 0 && len(stacks) > limit {
		stacks = stacks[:limit]
	}

	craftableFG := opts.Color("craftable_color", screen.Yellow)
	out := make([]interface{}, len(stacks))
	for i, s := range stacks {
		fg := screen.White
		if s.Craftable {
			fg = craftableFG
		}
		out[i] = meItemsRow{ItemStack: s, FG: fg}
	}
	return out, nil
}

func meItemsFormat(item interface{}, width int) view.Line {
	row := item.(meItemsRow)
	count := text.CompactNumber(row.Count)
	nameW := width - len(count) - 1
	if nameW < 1 {
		nameW = 1
	}
	name := row.DisplayName
	if name == "" {
		name = text.TitleCase(row.Name)
	}
	return view.Line{
		Text: text.Pad(name, nameW) + " " + count,
		FG:   row.FG,
		BG:   screen.Black,
	}
}

func meItemsStatus(data interface{}, scratch view.Scratch) string {
	items, _ := data.([]interface{})
	pinned, ok := scratch["pinned"].(string)
	if !ok {
		return fmt.Sprintf("%d types", len(items))
	}
	for _, it := range items {
		row := it.(meItemsRow)
		if row.Name == pinned {
			return fmt.Sprintf("%s: %s", text.TitleCase(pinned), text.CompactNumber(row.Count))
		}
	}
	// Pinned item no longer in view; keep showing its name so the pin is
	// visibly active.
	return text.TitleCase(pinned) + ": 0"
}
