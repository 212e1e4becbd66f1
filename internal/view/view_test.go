package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftmon/internal/peripheral"
	"craftmon/internal/screen"
)

func listDef(id string) *Definition {
	return &Definition{
		ID:       id,
		Title:    "Test",
		Strategy: StrategyList,
		GetItems: func(ctx context.Context, p *peripheral.Peripherals, opts Options) ([]interface{}, error) {
			return nil, nil
		},
		FormatItem: func(item interface{}, width int) Line { return Line{} },
	}
}

func TestDefinition_Validate(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		assert.NoError(t, listDef("ok").Validate())
	})

	t.Run("empty id", func(t *testing.T) {
		d := listDef("")
		assert.ErrorContains(t, d.Validate(), "empty id")
	})

	t.Run("list without formatter", func(t *testing.T) {
		d := listDef("x")
		d.FormatItem = nil
		assert.ErrorContains(t, d.Validate(), "FormatItem")
	})

	t.Run("interactive without OnSelect", func(t *testing.T) {
		d := listDef("x")
		d.Strategy = StrategyInteractive
		assert.ErrorContains(t, d.Validate(), "OnSelect")
	})

	t.Run("grid without FormatTile", func(t *testing.T) {
		d := listDef("x")
		d.Strategy = StrategyGrid
		assert.ErrorContains(t, d.Validate(), "FormatTile")
	})

	t.Run("custom without Render", func(t *testing.T) {
		d := &Definition{
			ID: "x", Title: "X", Strategy: StrategyCustom,
			GetData: func(ctx context.Context, p *peripheral.Peripherals, opts Options) (interface{}, error) {
				return nil, nil
			},
		}
		assert.ErrorContains(t, d.Validate(), "Render")
	})

	t.Run("unknown strategy", func(t *testing.T) {
		d := listDef("x")
		d.Strategy = "spiral"
		assert.ErrorContains(t, d.Validate(), "unknown strategy")
	})

	t.Run("bad option schema", func(t *testing.T) {
		d := listDef("x")
		d.Schema = []OptionSpec{{Key: "limit", Type: OptionInt, Default: "ten"}}
		assert.ErrorContains(t, d.Validate(), "bad default")
	})
}

func TestResolveOptions(t *testing.T) {
	schema := []OptionSpec{
		{Key: "limit", Type: OptionInt, Default: 20},
		{Key: "sort", Type: OptionString, Default: "count"},
		{Key: "craftable_only", Type: OptionBool, Default: false},
		{Key: "bar_color", Type: OptionColor, Default: "green"},
		{Key: "window", Type: OptionDuration, Default: "30s"},
	}

	t.Run("defaults applied", func(t *testing.T) {
		opts, err := ResolveOptions(schema, nil)
		require.NoError(t, err)
		assert.Equal(t, 20, opts.Int("limit", 0))
		assert.Equal(t, "count", opts.String("sort", ""))
		assert.Equal(t, screen.Green, opts.Color("bar_color", screen.White))
		assert.Equal(t, 30*time.Second, opts.Duration("window", 0))
	})

	t.Run("yaml values coerced", func(t *testing.T) {
		opts, err := ResolveOptions(schema, map[string]interface{}{
			"limit":          float64(50), // yaml numbers may arrive as float64
			"craftable_only": true,
			"bar_color":      "red",
			"window":         "1m",
		})
		require.NoError(t, err)
		assert.Equal(t, 50, opts.Int("limit", 0))
		assert.True(t, opts.Bool("craftable_only", false))
		assert.Equal(t, screen.Red, opts.Color("bar_color", screen.White))
		assert.Equal(t, time.Minute, opts.Duration("window", 0))
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		_, err := ResolveOptions(schema, map[string]interface{}{"limt": 5})
		assert.ErrorContains(t, err, "unknown option")
	})

	t.Run("bad color rejected", func(t *testing.T) {
		_, err := ResolveOptions(schema, map[string]interface{}{"bar_color": "chartreuse"})
		assert.ErrorContains(t, err, "unknown color")
	})

	t.Run("fractional int rejected", func(t *testing.T) {
		_, err := ResolveOptions(schema, map[string]interface{}{"limit": 2.5})
		assert.Error(t, err)
	})
}

func TestZones(t *testing.T) {
	var zs Zones
	zs.Add(Zone{X: 0, Y: 0, W: 10, H: 5, Action: ActionSelect, Index: 1})
	zs.Add(Zone{X: 0, Y: 0, W: 2, H: 1, Action: ActionPagePrev})

	// Topmost zone wins on overlap.
	z, ok := zs.Hit(1, 0)
	require.True(t, ok)
	assert.Equal(t, ActionPagePrev, z.Action)

	z, ok = zs.Hit(5, 3)
	require.True(t, ok)
	assert.Equal(t, ActionSelect, z.Action)

	_, ok = zs.Hit(10, 0)
	assert.False(t, ok)

	zs.Reset()
	assert.Equal(t, 0, zs.Len())
	_, ok = zs.Hit(1, 0)
	assert.False(t, ok)

	// Degenerate zones are dropped.
	zs.Add(Zone{X: 0, Y: 0, W: 0, H: 3})
	assert.Equal(t, 0, zs.Len())
}
