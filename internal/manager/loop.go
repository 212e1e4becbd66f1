package manager

import (
	"context"
	"time"

	"craftmon/internal/logging"
)

// Loop drives the manager: one goroutine consumes bus events and renders at
// most one due view per tick. Views share the loop cooperatively, so a slow
// fetch delays neighbours but never corrupts them; the per-fetch timeout
// bounds the damage.
type Loop struct {
	m       *Manager
	tick    time.Duration
	timeout time.Duration
	reload  chan func() error
}

// NewLoop creates a loop over m. tick is the heartbeat, timeout bounds a
// single view's data fetch.
func NewLoop(m *Manager, tick, timeout time.Duration) *Loop {
	if tick <= 0 {
		tick = 250 * time.Millisecond
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Loop{
		m:       m,
		tick:    tick,
		timeout: timeout,
		reload:  make(chan func() error, 1),
	}
}

// Reload queues fn to run on the loop goroutine before the next tick. Used
// by the config watcher so Reconfigure never races a render.
func (l *Loop) Reload(fn func() error) {
	select {
	case l.reload <- fn:
	default:
		logging.ManagerWarn("reload dropped: previous reload still pending")
	}
}

// Run blocks until ctx is cancelled. It is the single consumer of the bus
// event stream.
func (l *Loop) Run(ctx context.Context) error {
	logging.Loop("loop started: tick %v, fetch timeout %v", l.tick, l.timeout)
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	events := l.m.bus.Events()
	for {
		select {
		case <-ctx.Done():
			logging.Loop("loop stopped: %v", ctx.Err())
			return ctx.Err()

		case fn := <-l.reload:
			if err := fn(); err != nil {
				logging.ManagerWarn("reload failed: %v", err)
			}

		case ev := <-events:
			l.m.HandleEvent(ev)

		case now := <-ticker.C:
			// Drain any events that raced the tick so touches stay snappy
			// even when every view is due.
			for drained := false; !drained; {
				select {
				case ev := <-events:
					l.m.HandleEvent(ev)
				default:
					drained = true
				}
			}
			l.renderOne(ctx, now)
		}
	}
}

// renderOne refreshes at most one due view.
func (l *Loop) renderOne(ctx context.Context, now time.Time) {
	mt := l.m.nextDue(now)
	if mt == nil {
		return
	}
	fetchCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	if err := mt.in.Refresh(fetchCtx, l.m.p); err != nil {
		logging.ViewError("view %s: %v", mt.in.Definition().ID, err)
	}
}
