package sim

import (
	"context"
	"math"
	"sync"

	"craftmon/internal/peripheral"
)

// EnergyStore is a simulated energy cell. The stored level follows a slow
// sine wave around a midpoint so bars and graphs visibly move.
type EnergyStore struct {
	name     string
	capacity int64

	mu   sync.Mutex
	step float64
}

// NewEnergyStore creates a store with the given capacity.
func NewEnergyStore(name string, capacity int64) *EnergyStore {
	return &EnergyStore{name: name, capacity: capacity}
}

// Name implements peripheral.Peripheral.
func (e *EnergyStore) Name() string { return e.name }

// Kind implements peripheral.Peripheral.
func (e *EnergyStore) Kind() peripheral.Kind { return peripheral.KindEnergyStore }

// Energy implements peripheral.EnergyStore.
func (e *EnergyStore) Energy(ctx context.Context) (peripheral.EnergyStats, error) {
	if err := ctx.Err(); err != nil {
		return peripheral.EnergyStats{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.step += 0.05
	frac := 0.55 + 0.4*math.Sin(e.step)
	in := int64(800 + 400*math.Sin(e.step*1.7))
	out := int64(700 + 500*math.Cos(e.step*1.3))
	if in < 0 {
		in = 0
	}
	if out < 0 {
		out = 0
	}
	return peripheral.EnergyStats{
		Stored:   int64(frac * float64(e.capacity)),
		Capacity: e.capacity,
		Input:    in,
		Output:   out,
	}, nil
}
