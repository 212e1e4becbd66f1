package sim

import (
	"context"
	"math/rand"
	"sync"

	"craftmon/internal/peripheral"
)

// MEBridge is a simulated storage/crafting network. Item counts drift a
// little on every poll; crafting CPUs cycle through jobs. All drift comes
// from a seeded generator, so a fixed seed replays the same sequence.
type MEBridge struct {
	name string

	mu    sync.Mutex
	rng   *rand.Rand
	items []peripheral.ItemStack
	cpus  []peripheral.CraftingCPU
	usage float64
}

// NewMEBridge creates a bridge with a default inventory.
func NewMEBridge(name string, seed int64) *MEBridge {
	rng := rand.New(rand.NewSource(seed))
	b := &MEBridge{
		name:  name,
		rng:   rng,
		usage: 120,
		items: []peripheral.ItemStack{
			{Name: "minecraft:cobblestone", DisplayName: "Cobblestone", Count: 1_482_000},
			{Name: "minecraft:iron_ingot", DisplayName: "Iron Ingot", Count: 68_400, Craftable: true},
			{Name: "minecraft:gold_ingot", DisplayName: "Gold Ingot", Count: 12_950, Craftable: true},
			{Name: "minecraft:redstone", DisplayName: "Redstone Dust", Count: 230_100},
			{Name: "ae2:certus_quartz_crystal", DisplayName: "Certus Quartz Crystal", Count: 41_700, Craftable: true},
			{Name: "minecraft:diamond", DisplayName: "Diamond", Count: 3_210},
			{Name: "minecraft:oak_log", DisplayName: "Oak Log", Count: 96_800},
			{Name: "thermal:tin_ingot", DisplayName: "Tin Ingot", Count: 55_020, Craftable: true},
			{Name: "thermal:copper_ingot", DisplayName: "Copper Ingot", Count: 88_340, Craftable: true},
			{Name: "minecraft:lapis_lazuli", DisplayName: "Lapis Lazuli", Count: 19_404},
			{Name: "minecraft:glowstone_dust", DisplayName: "Glowstone Dust", Count: 7_771},
			{Name: "minecraft:ender_pearl", DisplayName: "Ender Pearl", Count: 1_206, Craftable: true},
		},
		cpus: []peripheral.CraftingCPU{
			{Name: "cpu_1", Storage: 65_536, Coprocessors: 4},
			{Name: "cpu_2", Storage: 65_536, Coprocessors: 4},
			{Name: "cpu_3", Storage: 262_144, Coprocessors: 16},
			{Name: "cpu_4", Storage: 16_384, Coprocessors: 1},
		},
	}
	return b
}

// SetItems replaces the inventory, for tests.
func (b *MEBridge) SetItems(items []peripheral.ItemStack) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append([]peripheral.ItemStack(nil), items...)
}

// Name implements peripheral.Peripheral.
func (b *MEBridge) Name() string { return b.name }

// Kind implements peripheral.Peripheral.
func (b *MEBridge) Kind() peripheral.Kind { return peripheral.KindMEBridge }

// Items implements peripheral.MEBridge. Counts drift by up to ±0.5% per poll
// and never go negative.
func (b *MEBridge) Items(ctx context.Context) ([]peripheral.ItemStack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]peripheral.ItemStack, len(b.items))
	for i := range b.items {
		drift := int64(float64(b.items[i].Count) * (b.rng.Float64() - 0.5) / 100)
		b.items[i].Count += drift
		if b.items[i].Count < 0 {
			b.items[i].Count = 0
		}
		out[i] = b.items[i]
	}
	return out, nil
}

// CraftingCPUs implements peripheral.MEBridge. Idle CPUs occasionally pick
// up a job; busy CPUs advance and finish.
func (b *MEBridge) CraftingCPUs(ctx context.Context) ([]peripheral.CraftingCPU, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	jobs := []string{"minecraft:iron_ingot", "ae2:certus_quartz_crystal", "minecraft:ender_pearl", "thermal:tin_ingot"}
	for i := range b.cpus {
		cpu := &b.cpus[i]
		if cpu.Busy {
			cpu.Job.Progress += 0.05 + b.rng.Float64()*0.1
			if cpu.Job.Progress >= 1 {
				cpu.Busy = false
				cpu.Job = nil
			}
		} else if b.rng.Float64() < 0.2 {
			cpu.Busy = true
			cpu.Job = &peripheral.CraftingJob{
				Item:     jobs[b.rng.Intn(len(jobs))],
				Quantity: int64(1 + b.rng.Intn(256)),
			}
		}
	}
	out := make([]peripheral.CraftingCPU, len(b.cpus))
	for i, cpu := range b.cpus {
		if cpu.Job != nil {
			job := *cpu.Job
			cpu.Job = &job
		}
		out[i] = cpu
	}
	return out, nil
}

// EnergyUsage implements peripheral.MEBridge.
func (b *MEBridge) EnergyUsage(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.usage += (b.rng.Float64() - 0.5) * 10
	if b.usage < 20 {
		b.usage = 20
	}
	return b.usage, nil
}
