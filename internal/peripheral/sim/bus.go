// Package sim provides in-memory peripherals backing the dev console and the
// test suite. Devices drift their readings deterministically from a seed so
// graphs move without real hardware.
package sim

import (
	"sort"
	"sync"

	"craftmon/internal/peripheral"
)

// Bus is an in-memory peripheral bus. Attach, Detach and Touch may be called
// from any goroutine.
type Bus struct {
	mu      sync.RWMutex
	devices map[string]peripheral.Peripheral
	events  chan peripheral.Event
}

// NewBus creates an empty bus. The event channel is buffered; if the
// consumer falls far behind, the oldest events are dropped rather than
// blocking device goroutines.
func NewBus() *Bus {
	return &Bus{
		devices: make(map[string]peripheral.Peripheral),
		events:  make(chan peripheral.Event, 64),
	}
}

// Attach adds a device and emits an attach event. Re-attaching an existing
// name replaces the device.
func (b *Bus) Attach(p peripheral.Peripheral) {
	b.mu.Lock()
	b.devices[p.Name()] = p
	b.mu.Unlock()
	b.post(peripheral.Event{Type: peripheral.EventAttach, Name: p.Name(), Kind: p.Kind()})
}

// Detach removes a device by name and emits a detach event. Unknown names
// are ignored.
func (b *Bus) Detach(name string) {
	b.mu.Lock()
	p, ok := b.devices[name]
	if ok {
		delete(b.devices, name)
	}
	b.mu.Unlock()
	if ok {
		b.post(peripheral.Event{Type: peripheral.EventDetach, Name: name, Kind: p.Kind()})
	}
}

// Touch emits a touch event for the named monitor at cell (x, y).
func (b *Bus) Touch(name string, x, y int) {
	b.post(peripheral.Event{Type: peripheral.EventTouch, Name: name, Kind: peripheral.KindMonitor, X: x, Y: y})
}

func (b *Bus) post(ev peripheral.Event) {
	for {
		select {
		case b.events <- ev:
			return
		default:
			// Drop the oldest event to make room.
			select {
			case <-b.events:
			default:
			}
		}
	}
}

// Names implements peripheral.Bus.
func (b *Bus) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.devices))
	for n := range b.devices {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup implements peripheral.Bus.
func (b *Bus) Lookup(name string) (peripheral.Peripheral, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.devices[name]
	return p, ok
}

// OfKind implements peripheral.Bus.
func (b *Bus) OfKind(k peripheral.Kind) []peripheral.Peripheral {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.devices))
	for n, p := range b.devices {
		if p.Kind() == k {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	out := make([]peripheral.Peripheral, 0, len(names))
	for _, n := range names {
		out = append(out, b.devices[n])
	}
	return out
}

// Events implements peripheral.Bus.
func (b *Bus) Events() <-chan peripheral.Event { return b.events }
