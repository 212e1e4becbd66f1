// Package manager assigns views to monitors and drives them from a single
// cooperative event loop. The manager owns every view instance; views never
// see the bus event stream or each other.
package manager

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"craftmon/internal/config"
	"craftmon/internal/logging"
	"craftmon/internal/peripheral"
	"craftmon/internal/view"
)

// assignment is one desired monitor-to-view binding from config. Desired is
// not the same as mounted: the monitor or a required peripheral may be
// absent, in which case the assignment waits for an attach event.
type assignment struct {
	monitor   string
	viewID    string
	refresh   time.Duration // 0 means use the view default
	textScale float64
	options   map[string]interface{}
	auto      bool // from auto_assign, not an explicit entry
}

// mount is one live view instance plus its scheduling state.
type mount struct {
	in       *view.Instance
	interval time.Duration
	lastRun  time.Time
}

// Manager resolves config assignments against the registry and the bus and
// keeps the set of mounted instances current as peripherals come and go.
// All methods are called from the event loop goroutine; the mutex only
// guards the read-side snapshot helpers used by the CLI and console.
type Manager struct {
	reg *view.Registry
	bus peripheral.Bus
	p   *peripheral.Peripherals

	mu       sync.Mutex
	desired  []assignment
	mounts   map[string]*mount // by monitor name
	backoff  time.Duration
	rrCursor int
}

// New creates a manager over the given registry and bus.
func New(reg *view.Registry, bus peripheral.Bus) *Manager {
	return &Manager{
		reg:    reg,
		bus:    bus,
		p:      peripheral.NewPeripherals(bus),
		mounts: make(map[string]*mount),
	}
}

// Peripherals returns the typed lookup the manager hands to views.
func (m *Manager) Peripherals() *peripheral.Peripherals { return m.p }

// Reconfigure replaces the desired assignments from config and remounts.
// Existing instances for unchanged assignments are rebuilt; view scratch
// state does not survive a reconfigure.
func (m *Manager) Reconfigure(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.backoff = cfg.Loop.ErrorBackoffDuration()
	m.desired = m.desired[:0]
	explicit := make(map[string]bool, len(cfg.Monitors))
	for _, a := range cfg.Monitors {
		explicit[a.Monitor] = true
		m.desired = append(m.desired, assignment{
			monitor:   a.Monitor,
			viewID:    a.View,
			refresh:   a.RefreshDuration(0),
			textScale: a.TextScale,
			options:   a.Options,
		})
	}
	if cfg.AutoAssign.Enabled {
		for _, mon := range m.p.Monitors() {
			if !explicit[mon.Name()] {
				m.desired = append(m.desired, assignment{
					monitor: mon.Name(),
					viewID:  cfg.AutoAssign.View,
					auto:    true,
				})
			}
		}
	}

	m.mounts = make(map[string]*mount)
	for _, a := range m.desired {
		m.tryMount(a)
	}
	logging.Manager("reconfigured: %d desired, %d mounted", len(m.desired), len(m.mounts))
	return nil
}

// tryMount attempts to bring one assignment live. Failures are logged and
// left for the next attach event; only the named monitor stays dark.
func (m *Manager) tryMount(a assignment) {
	if _, ok := m.mounts[a.monitor]; ok {
		return
	}
	def, ok := m.reg.Get(a.viewID)
	if !ok {
		logging.ManagerWarn("monitor %s: unknown view %q", a.monitor, a.viewID)
		return
	}
	mon, err := m.p.Monitor(a.monitor)
	if err != nil {
		logging.ManagerWarn("monitor %s: %v", a.monitor, err)
		return
	}
	if err := def.CheckMount(m.p); err != nil {
		logging.ManagerWarn("monitor %s: view %s cannot mount: %v", a.monitor, a.viewID, err)
		return
	}
	opts, err := view.ResolveOptions(def.Schema, a.options)
	if err != nil {
		logging.ManagerWarn("monitor %s: view %s options: %v", a.monitor, a.viewID, err)
		return
	}
	if a.textScale > 0 {
		mon.SetTextScale(a.textScale)
	}

	interval := a.refresh
	if interval <= 0 {
		interval = def.RefreshInterval()
	}
	m.mounts[a.monitor] = &mount{
		in:       view.NewInstance(def, mon, opts, m.backoff),
		interval: interval,
	}
	logging.Manager("monitor %s: mounted view %s (refresh %v)", a.monitor, a.viewID, interval)
}

// HandleEvent reacts to one bus event: touches route to the owning
// instance, attach/detach re-evaluates mounts.
func (m *Manager) HandleEvent(ev peripheral.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch ev.Type {
	case peripheral.EventTouch:
		mt, ok := m.mounts[ev.Name]
		if !ok {
			return
		}
		if mt.in.HandleTouch(ev.X, ev.Y) {
			logging.LoopDebug("touch on %s consumed", ev.Name)
		}

	case peripheral.EventAttach:
		logging.PeripheralLog("attach %s (%s)", ev.Name, ev.Kind)
		// A new peripheral may satisfy a waiting assignment.
		for _, a := range m.desired {
			m.tryMount(a)
		}

	case peripheral.EventDetach:
		logging.PeripheralLog("detach %s (%s)", ev.Name, ev.Kind)
		if ev.Kind == peripheral.KindMonitor {
			if _, ok := m.mounts[ev.Name]; ok {
				delete(m.mounts, ev.Name)
				logging.Manager("monitor %s: unmounted (detached)", ev.Name)
			}
			return
		}
		// A data peripheral left: any instance that no longer passes its
		// mount check shows the detach banner until the device returns.
		for name, mt := range m.mounts {
			if err := mt.in.Definition().CheckMount(m.p); err != nil {
				mt.in.MarkLost(ev.Kind)
				logging.Manager("monitor %s: view %s lost %s", name, mt.in.Definition().ID, ev.Kind)
			}
		}
	}
}

// nextDue picks at most one instance whose refresh interval has elapsed,
// round-robin over monitor names so a hungry view cannot starve the rest.
func (m *Manager) nextDue(now time.Time) *mount {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.mounts))
	for name := range m.mounts {
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	for i := 0; i < len(names); i++ {
		name := names[(m.rrCursor+i)%len(names)]
		mt := m.mounts[name]
		if now.Sub(mt.lastRun) >= mt.interval {
			m.rrCursor = (m.rrCursor + i + 1) % len(names)
			mt.lastRun = now
			return mt
		}
	}
	return nil
}

// MountedViews reports monitor -> view id for the CLI and console.
func (m *Manager) MountedViews() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.mounts))
	for name, mt := range m.mounts {
		out[name] = mt.in.Definition().ID
	}
	return out
}
