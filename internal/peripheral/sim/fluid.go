package sim

import (
	"context"
	"math/rand"
	"sync"

	"craftmon/internal/peripheral"
)

// FluidStore is a simulated tank bank.
type FluidStore struct {
	name string

	mu    sync.Mutex
	rng   *rand.Rand
	tanks []peripheral.Tank
}

// NewFluidStore creates a store with a default set of tanks.
func NewFluidStore(name string, seed int64) *FluidStore {
	return &FluidStore{
		name: name,
		rng:  rand.New(rand.NewSource(seed)),
		tanks: []peripheral.Tank{
			{Fluid: "minecraft:water", Amount: 912_000, Capacity: 1_024_000},
			{Fluid: "minecraft:lava", Amount: 204_000, Capacity: 1_024_000},
			{Fluid: "thermal:crude_oil", Amount: 87_500, Capacity: 512_000},
			{Fluid: "mekanism:hydrogen", Amount: 451_000, Capacity: 512_000},
		},
	}
}

// Name implements peripheral.Peripheral.
func (f *FluidStore) Name() string { return f.name }

// Kind implements peripheral.Peripheral.
func (f *FluidStore) Kind() peripheral.Kind { return peripheral.KindFluidStore }

// Tanks implements peripheral.FluidStore. Levels drift by up to ±2% of
// capacity per poll, clamped to [0, capacity].
func (f *FluidStore) Tanks(ctx context.Context) ([]peripheral.Tank, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]peripheral.Tank, len(f.tanks))
	for i := range f.tanks {
		t := &f.tanks[i]
		drift := int64(float64(t.Capacity) * (f.rng.Float64() - 0.5) / 25)
		t.Amount += drift
		if t.Amount < 0 {
			t.Amount = 0
		}
		if t.Amount > t.Capacity {
			t.Amount = t.Capacity
		}
		out[i] = *t
	}
	return out, nil
}
