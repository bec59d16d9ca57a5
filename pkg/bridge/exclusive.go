package bridge

import (
	"sync"
	"time"

	"github.com/go-drift/bridge/pkg/dispatch"
)

// exclusiveGroup is the shared debounced dispatch slot for one exclusive
// group. Every trigger records the event as the group's active event and
// restarts the quiet period; when the period elapses, only the active event
// is delivered, once, with the arguments of the last trigger.
type exclusiveGroup struct {
	mu        sync.Mutex
	window    time.Duration
	scheduler dispatch.Scheduler
	deliver   func(event string, args []any)

	active  string
	args    []any
	timer   dispatch.Timer
	seq     uint64 // invalidates timers that fire after a newer trigger
	stopped bool
}

func newExclusiveGroup(window time.Duration, s dispatch.Scheduler, deliver func(string, []any)) *exclusiveGroup {
	return &exclusiveGroup{
		window:    window,
		scheduler: s,
		deliver:   deliver,
	}
}

func (g *exclusiveGroup) trigger(event string, args []any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return
	}

	g.active = event
	g.args = args
	g.seq++
	current := g.seq

	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = g.scheduler.AfterFunc(g.window, func() {
		g.mu.Lock()
		if g.stopped || g.seq != current {
			g.mu.Unlock()
			return
		}
		event, args := g.active, g.args
		g.timer = nil
		g.args = nil
		g.mu.Unlock()
		g.deliver(event, args)
	})
}

// pending reports whether a delivery is scheduled.
func (g *exclusiveGroup) pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil
}

// cancel drops any scheduled delivery. Later triggers are ignored.
func (g *exclusiveGroup) cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.seq++
	g.stopped = true
	g.args = nil
}
