package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftmon/internal/peripheral"
	"craftmon/internal/peripheral/sim"
	"craftmon/internal/screen"
	"craftmon/internal/view"
	"craftmon/internal/widget"
)

func simPeripherals(t *testing.T) *peripheral.Peripherals {
	t.Helper()
	bus := sim.NewBus()
	bus.Attach(sim.NewMEBridge("me_bridge_0", 1))
	bus.Attach(sim.NewEnergyStore("energy_0", 1_000_000))
	bus.Attach(sim.NewFluidStore("fluids_0", 1))
	return peripheral.NewPeripherals(bus)
}

func resolve(t *testing.T, def *view.Definition, raw map[string]interface{}) view.Options {
	t.Helper()
	opts, err := view.ResolveOptions(def.Schema, raw)
	require.NoError(t, err)
	return opts
}

func TestRegister(t *testing.T) {
	reg := view.NewRegistry()
	require.NoError(t, Register(reg))

	for _, id := range []string{"meitems", "crafting", "energy", "fluids", "status"} {
		_, ok := reg.Get(id)
		assert.True(t, ok, "view %s missing", id)
	}

	// Every builtin passes its own validation twice over: Register already
	// validated, and the schema defaults must resolve cleanly.
	for _, def := range reg.All() {
		_, err := view.ResolveOptions(def.Schema, nil)
		assert.NoError(t, err, "view %s schema", def.ID)
	}
}

func TestMEItems_FetchSortsAndLimits(t *testing.T) {
	p := simPeripherals(t)
	def := MEItems()

	opts := resolve(t, def, map[string]interface{}{"limit": 5})
	items, err := def.GetItems(context.Background(), p, opts)
	require.NoError(t, err)
	require.Len(t, items, 5)

	// Default sort is by count, descending.
	prev := items[0].(meItemsRow).Count
	for _, it := range items[1:] {
		row := it.(meItemsRow)
		assert.LessOrEqual(t, row.Count, prev)
		prev = row.Count
	}
}

func TestMEItems_CraftableOnly(t *testing.T) {
	p := simPeripherals(t)
	def := MEItems()

	opts := resolve(t, def, map[string]interface{}{"craftable_only": true})
	items, err := def.GetItems(context.Background(), p, opts)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	for _, it := range items {
		row := it.(meItemsRow)
		assert.True(t, row.Craftable)
		assert.Equal(t, screen.Yellow, row.FG)
	}
}

func TestMEItems_FormatAndPin(t *testing.T) {
	def := MEItems()
	row := meItemsRow{
		ItemStack: peripheral.ItemStack{Name: "minecraft:iron_ingot", DisplayName: "Iron Ingot", Count: 15400},
		FG:        screen.White,
	}

	line := def.FormatItem(row, 20)
	assert.Len(t, []rune(line.Text), 20)
	assert.Contains(t, line.Text, "Iron Ingot")
	assert.Contains(t, line.Text, "15K")

	scratch := make(view.Scratch)
	def.OnSelect(row, scratch)
	assert.Equal(t, "minecraft:iron_ingot", scratch["pinned"])

	status := def.Status([]interface{}{row}, scratch)
	assert.Contains(t, status, "Iron Ingot")
	assert.Contains(t, status, "15K")

	// Second touch on the same item unpins.
	def.OnSelect(row, scratch)
	_, pinned := scratch["pinned"]
	assert.False(t, pinned)
}

func TestCrafting_TilesAndStatus(t *testing.T) {
	p := simPeripherals(t)
	def := Crafting()

	items, err := def.GetItems(context.Background(), p, resolve(t, def, nil))
	require.NoError(t, err)
	require.NotEmpty(t, items)

	status := def.Status(items, make(view.Scratch))
	assert.Regexp(t, `^\d+/\d+ busy$`, status)

	idle := craftingCell{
		CraftingCPU: peripheral.CraftingCPU{Name: "cpu_1", Storage: 64_000},
		TitleBG:     screen.Gray,
	}
	tile := def.FormatTile(idle, 14)
	assert.Equal(t, "cpu_1", tile.Title.Text)
	require.Len(t, tile.Lines, 2)
	assert.Equal(t, "idle", tile.Lines[0].Text)
	assert.Contains(t, tile.Lines[1].Text, "64K")

	busy := craftingCell{
		CraftingCPU: peripheral.CraftingCPU{
			Name: "cpu_2", Busy: true,
			Job: &peripheral.CraftingJob{Item: "minecraft:piston", Quantity: 32, Progress: 0.5},
		},
		TitleBG: screen.Lime,
	}
	tile = def.FormatTile(busy, 14)
	assert.Contains(t, tile.Lines[0].Text, "32x Piston")
	assert.Contains(t, tile.Lines[1].Text, "50%")
	assert.Contains(t, tile.Lines[1].Text, "#")
}

func TestEnergy_RenderAccumulatesHistory(t *testing.T) {
	p := simPeripherals(t)
	def := Energy()
	opts := resolve(t, def, nil)

	data, err := def.GetData(context.Background(), p, opts)
	require.NoError(t, err)
	snap := data.(energySnapshot)
	assert.GreaterOrEqual(t, snap.Frac, 0.0)
	assert.LessOrEqual(t, snap.Frac, 1.0)

	buf := screen.NewBuffer(30, 8)
	win := screen.NewWindow(buf, 0, 0, 30, 8)
	scratch := make(view.Scratch)
	c := &view.Canvas{Win: win, Opts: opts, Scratch: scratch}

	def.Render(c, snap)
	def.Render(c, snap)

	// The net-flow ring lives in scratch and grows across renders.
	hist, ok := scratch[energyHistoryKey].(*widget.History)
	require.True(t, ok)
	assert.Equal(t, 2, hist.Len())

	// The readout and bar rows are painted.
	assert.Contains(t, rowText(buf, 0), "/")
	assert.Contains(t, rowText(buf, 1), "%")
}

func TestEnergy_DrainingCellClampsSparkline(t *testing.T) {
	def := Energy()
	opts := resolve(t, def, nil)

	buf := screen.NewBuffer(30, 8)
	win := screen.NewWindow(buf, 0, 0, 30, 8)
	scratch := make(view.Scratch)
	c := &view.Canvas{Win: win, Opts: opts, Scratch: scratch}

	// A draining cell pushes a zero sample: the sparkline scales to the
	// positive max, so negative net flow must not reach the ring.
	drain := energySnapshot{
		EnergyStats: peripheral.EnergyStats{Stored: 500_000, Capacity: 1_000_000, Input: 100, Output: 400},
		Frac:        0.5,
	}
	def.Render(c, drain)

	hist, ok := scratch[energyHistoryKey].(*widget.History)
	require.True(t, ok)
	require.Equal(t, 1, hist.Len())
	assert.Equal(t, 0.0, hist.Last())

	// The signed readout still reports the drain.
	assert.Contains(t, rowText(buf, 2), "net -300")

	charge := energySnapshot{
		EnergyStats: peripheral.EnergyStats{Stored: 500_000, Capacity: 1_000_000, Input: 400, Output: 100},
		Frac:        0.5,
	}
	def.Render(c, charge)
	assert.Equal(t, 300.0, hist.Last())
}

func TestFluids_RowsCarryFillState(t *testing.T) {
	p := simPeripherals(t)
	def := Fluids()

	items, err := def.GetItems(context.Background(), p, resolve(t, def, nil))
	require.NoError(t, err)
	require.NotEmpty(t, items)

	// Default sort is by amount, descending.
	prev := items[0].(fluidRow).Amount
	for _, it := range items[1:] {
		row := it.(fluidRow)
		assert.LessOrEqual(t, row.Amount, prev)
		prev = row.Amount
	}

	footer := def.Footer(items, make(view.Scratch))
	assert.Contains(t, footer, "total ")

	full := fluidRow{Tank: peripheral.Tank{Fluid: "minecraft:lava", Amount: 95, Capacity: 100}, Frac: 0.95, FG: screen.Red}
	line := def.FormatItem(full, 30)
	assert.Contains(t, line.Text, "Lava")
	assert.Contains(t, line.Text, "95%")
	assert.Equal(t, screen.Red, line.FG)
}

func TestStatus_MountsAnywhereAndListsBus(t *testing.T) {
	def := Status()
	empty := peripheral.NewPeripherals(sim.NewBus())
	assert.NoError(t, def.CheckMount(empty))

	p := simPeripherals(t)
	opts := resolve(t, def, nil)
	data, err := def.GetData(context.Background(), p, opts)
	require.NoError(t, err)
	inv := data.(statusData)
	assert.Equal(t, 3, inv.Total)

	buf := screen.NewBuffer(30, 10)
	win := screen.NewWindow(buf, 0, 0, 30, 10)
	def.Render(&view.Canvas{Win: win, Opts: opts, Scratch: make(view.Scratch)}, inv)
	all := ""
	for y := 0; y < 10; y++ {
		all += rowText(buf, y)
	}
	assert.Contains(t, all, "me_bridge_0")
	assert.Contains(t, all, "energy_0")
	assert.Contains(t, all, "fluids_0")
}

func TestStatus_EmptyBus(t *testing.T) {
	def := Status()
	data, err := def.GetData(context.Background(), peripheral.NewPeripherals(sim.NewBus()), nil)
	require.NoError(t, err)

	buf := screen.NewBuffer(30, 4)
	win := screen.NewWindow(buf, 0, 0, 30, 4)
	def.Render(&view.Canvas{Win: win, Opts: nil, Scratch: make(view.Scratch)}, data)
	assert.Contains(t, rowText(buf, 0), "no peripherals")
}

func rowText(b *screen.Buffer, y int) string {
	return b.Row(y)
}
