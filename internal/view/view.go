// Package view implements the declarative view contract and the base
// runtime that renders view descriptors onto monitors. A view declares what
// to show: a data fetch and a format function. The runtime owns how: layout,
// pagination, touch zones and double-buffered flushes.
package view

import (
	"context"
	"fmt"
	"time"

	"craftmon/internal/peripheral"
	"craftmon/internal/screen"
)

// Strategy selects which rendering path the base runtime uses.
type Strategy string

const (
	// StrategyList renders one formatted line per item, paginated.
	StrategyList Strategy = "list"
	// StrategyInteractive is a list whose rows are touchable.
	StrategyInteractive Strategy = "interactive-list"
	// StrategyGrid renders items as tiles packed into columns.
	StrategyGrid Strategy = "grid"
	// StrategyCustom hands the view the whole body window.
	StrategyCustom Strategy = "custom"
)

// Line is one formatted row of output.
type Line struct {
	Text string
	FG   screen.Color
	BG   screen.Color
}

// Tile is one grid cell: a title row plus detail lines.
type Tile struct {
	Title Line
	Lines []Line
}

// Scratch is per-instance view state that survives between renders. Custom
// views keep graph history here; interactive views keep their selection.
type Scratch map[string]interface{}

// Canvas is what a custom view renders into.
type Canvas struct {
	Win     *screen.Window
	Opts    Options
	Scratch Scratch
}

// Definition is the declarative view descriptor. Definitions are stateless
// and shared; all mutable state lives in the Instance.
type Definition struct {
	ID       string
	Title    string
	Strategy Strategy

	// Requires lists the peripheral kinds the default mount check probes.
	Requires []peripheral.Kind
	// Mount overrides the default capability check when set.
	Mount func(p *peripheral.Peripherals) error

	// Refresh is the default data refresh interval; config may override it
	// per assignment.
	Refresh time.Duration

	// GetItems feeds the list, interactive-list and grid strategies. opts
	// carries the assignment's resolved options.
	GetItems func(ctx context.Context, p *peripheral.Peripherals, opts Options) ([]interface{}, error)
	// GetData feeds the custom strategy.
	GetData func(ctx context.Context, p *peripheral.Peripherals, opts Options) (interface{}, error)

	// FormatItem renders one list row at the given width.
	FormatItem func(item interface{}, width int) Line
	// FormatTile renders one grid tile at the given inner width.
	FormatTile func(item interface{}, width int) Tile
	// Render draws a custom view body.
	Render func(c *Canvas, data interface{})

	// OnSelect fires when an interactive-list row is touched.
	OnSelect func(item interface{}, scratch Scratch)
	// Status supplies the right-aligned header text. data is the items
	// slice for list strategies and the fetched value for custom.
	Status func(data interface{}, scratch Scratch) string
	// Footer supplies text for the bottom band. When the view paginates,
	// the pagination controls own the band and Footer is not called.
	Footer func(data interface{}, scratch Scratch) string

	// Grid tile minimums; zero values fall back to 12x3.
	TileMinW, TileMinH int

	// Schema declares the options this view accepts.
	Schema []OptionSpec
}

// Validate rejects descriptors missing the pieces their strategy needs.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("view: empty id")
	}
	if d.Title == "" {
		return fmt.Errorf("view %s: empty title", d.ID)
	}
	switch d.Strategy {
	case StrategyList:
		if d.GetItems == nil || d.FormatItem == nil {
			return fmt.Errorf("view %s: list strategy requires GetItems and FormatItem", d.ID)
		}
	case StrategyInteractive:
		if d.GetItems == nil || d.FormatItem == nil {
			return fmt.Errorf("view %s: interactive-list strategy requires GetItems and FormatItem", d.ID)
		}
		if d.OnSelect == nil {
			return fmt.Errorf("view %s: interactive-list strategy requires OnSelect", d.ID)
		}
	case StrategyGrid:
		if d.GetItems == nil || d.FormatTile == nil {
			return fmt.Errorf("view %s: grid strategy requires GetItems and FormatTile", d.ID)
		}
	case StrategyCustom:
		if d.GetData == nil || d.Render == nil {
			return fmt.Errorf("view %s: custom strategy requires GetData and Render", d.ID)
		}
	default:
		return fmt.Errorf("view %s: unknown strategy %q", d.ID, d.Strategy)
	}
	for _, spec := range d.Schema {
		if err := spec.validate(); err != nil {
			return fmt.Errorf("view %s: %w", d.ID, err)
		}
	}
	return nil
}

// CheckMount runs the capability probe against the bus.
func (d *Definition) CheckMount(p *peripheral.Peripherals) error {
	if d.Mount != nil {
		return d.Mount(p)
	}
	return p.Has(d.Requires...)
}

// RefreshInterval returns the view's refresh default, falling back to 1s.
func (d *Definition) RefreshInterval() time.Duration {
	if d.Refresh > 0 {
		return d.Refresh
	}
	return time.Second
}
