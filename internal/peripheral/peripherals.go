package peripheral

import "fmt"

// Peripherals is the typed lookup handed to view data-fetch functions. It
// resolves against the live bus on every call, so a view sees detaches as
// ErrNotPresent rather than stale devices.
type Peripherals struct {
	bus Bus
}

// NewPeripherals wraps a bus.
func NewPeripherals(bus Bus) *Peripherals {
	return &Peripherals{bus: bus}
}

// Bus returns the underlying bus.
func (p *Peripherals) Bus() Bus { return p.bus }

// Has is the mount-check helper: it errors on the first kind with no
// attached peripheral.
func (p *Peripherals) Has(kinds ...Kind) error {
	for _, k := range kinds {
		if len(p.bus.OfKind(k)) == 0 {
			return fmt.Errorf("%s: %w", k, ErrNotPresent)
		}
	}
	return nil
}

// MEBridge returns the first attached ME bridge.
func (p *Peripherals) MEBridge() (MEBridge, error) {
	for _, d := range p.bus.OfKind(KindMEBridge) {
		if b, ok := d.(MEBridge); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", KindMEBridge, ErrNotPresent)
}

// EnergyStore returns the first attached energy store.
func (p *Peripherals) EnergyStore() (EnergyStore, error) {
	for _, d := range p.bus.OfKind(KindEnergyStore) {
		if e, ok := d.(EnergyStore); ok {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", KindEnergyStore, ErrNotPresent)
}

// EnergyStores returns every attached energy store.
func (p *Peripherals) EnergyStores() []EnergyStore {
	var out []EnergyStore
	for _, d := range p.bus.OfKind(KindEnergyStore) {
		if e, ok := d.(EnergyStore); ok {
			out = append(out, e)
		}
	}
	return out
}

// FluidStore returns the first attached fluid store.
func (p *Peripherals) FluidStore() (FluidStore, error) {
	for _, d := range p.bus.OfKind(KindFluidStore) {
		if f, ok := d.(FluidStore); ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", KindFluidStore, ErrNotPresent)
}

// Monitors returns every attached monitor.
func (p *Peripherals) Monitors() []Monitor {
	var out []Monitor
	for _, d := range p.bus.OfKind(KindMonitor) {
		if m, ok := d.(Monitor); ok {
			out = append(out, m)
		}
	}
	return out
}

// Monitor resolves a monitor by name.
func (p *Peripherals) Monitor(name string) (Monitor, error) {
	d, ok := p.bus.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("monitor %q: %w", name, ErrNotPresent)
	}
	m, ok := d.(Monitor)
	if !ok {
		return nil, fmt.Errorf("peripheral %q is %s, not a monitor", name, d.Kind())
	}
	return m, nil
}
