// Package peripheral defines the device API that views poll: the bus, the
// peripheral kinds the framework understands, and the data shapes they
// report. Real hardware lives outside this module; the sim subpackage
// provides the in-process implementation used by the console and tests.
package peripheral

import (
	"context"
	"errors"

	"craftmon/internal/screen"
)

// Kind identifies a peripheral type on the bus.
type Kind string

const (
	KindMonitor     Kind = "monitor"
	KindMEBridge    Kind = "me_bridge"
	KindEnergyStore Kind = "energy_store"
	KindFluidStore  Kind = "fluid_store"
)

var (
	// ErrNotPresent is returned by mount checks and typed lookups when no
	// peripheral of the requested kind is attached.
	ErrNotPresent = errors.New("peripheral not present")

	// ErrDetached is returned by device calls after the peripheral left the
	// bus.
	ErrDetached = errors.New("peripheral detached")
)

// Peripheral is the base capability every bus device exposes.
type Peripheral interface {
	Name() string
	Kind() Kind
}

// Monitor is a cell-grid display. It embeds screen.Device so a Frame can
// blit to it directly.
type Monitor interface {
	Peripheral
	screen.Device
	// SetTextScale adjusts the character size; smaller scales give more
	// cells. Implementations may ignore it.
	SetTextScale(scale float64)
}

// ItemStack is one item type stored in an ME network.
type ItemStack struct {
	Name        string // registry name, e.g. "minecraft:iron_ingot"
	DisplayName string
	Count       int64
	Craftable   bool
}

// CraftingJob is the work a crafting CPU is currently executing.
type CraftingJob struct {
	Item     string
	Quantity int64
	Progress float64 // 0..1
}

// CraftingCPU is one crafting unit in an ME network.
type CraftingCPU struct {
	Name         string
	Storage      int64
	Coprocessors int
	Busy         bool
	Job          *CraftingJob // nil when idle
}

// MEBridge exposes the storage/crafting network.
type MEBridge interface {
	Peripheral
	Items(ctx context.Context) ([]ItemStack, error)
	CraftingCPUs(ctx context.Context) ([]CraftingCPU, error)
	// EnergyUsage is the network's current draw in units/tick.
	EnergyUsage(ctx context.Context) (float64, error)
}

// EnergyStats is a point-in-time reading from an energy cell or detector.
type EnergyStats struct {
	Stored   int64
	Capacity int64
	Input    int64 // units/tick flowing in
	Output   int64 // units/tick flowing out
}

// EnergyStore reports stored energy.
type EnergyStore interface {
	Peripheral
	Energy(ctx context.Context) (EnergyStats, error)
}

// Tank is one fluid tank.
type Tank struct {
	Fluid    string
	Amount   int64
	Capacity int64
}

// FluidStore reports fluid tanks.
type FluidStore interface {
	Peripheral
	Tanks(ctx context.Context) ([]Tank, error)
}

// EventType classifies bus events.
type EventType int

const (
	EventAttach EventType = iota
	EventDetach
	EventTouch
)

func (t EventType) String() string {
	switch t {
	case EventAttach:
		return "attach"
	case EventDetach:
		return "detach"
	case EventTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// Event is delivered on the bus event channel. Touch events carry the cell
// coordinates on the named monitor.
type Event struct {
	Type EventType
	Name string
	Kind Kind
	X, Y int
}

// Bus is the peripheral network. Implementations must be safe for use from
// multiple goroutines; the event loop is the single consumer of Events.
type Bus interface {
	// Names lists attached peripheral names in a stable order.
	Names() []string
	// Lookup resolves a peripheral by name.
	Lookup(name string) (Peripheral, bool)
	// OfKind lists attached peripherals of one kind in a stable order.
	OfKind(k Kind) []Peripheral
	// Events is the attach/detach/touch stream. The channel is never
	// closed while the bus is alive.
	Events() <-chan Event
}
