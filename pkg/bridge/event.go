package bridge

import (
	"sync"
	"time"

	"github.com/go-drift/bridge/pkg/dispatch"
	"github.com/go-drift/bridge/pkg/errors"
)

// eventRegistry keeps at most one real listener attached to the instance per
// event. The real listener looks up the current logical handler on every
// call, so handlers can be swapped without touching the subscription.
//
// The logical handler map is read from timer callbacks when exclusive groups
// fire off the UI thread, so it is guarded by mu. Everything else is only
// touched from the bridge's caller.
type eventRegistry[I any] struct {
	ordered []Event[I]
	defs    map[string]Event[I]
	real    map[string]*Listener
	groups  map[ExclusiveGroup]*exclusiveGroup

	window    time.Duration
	scheduler dispatch.Scheduler
	attach    func(instance I, event string, l *Listener, opts *Options[I])
	detach    func(instance I, event string, l *Listener, opts *Options[I])

	mu      sync.Mutex
	logical map[string]Handler
}

func newEventRegistry[I any](def *Definition[I], s dispatch.Scheduler) (*eventRegistry[I], error) {
	ordered, byName, err := normalizeEvents(def.Events)
	if err != nil {
		return nil, err
	}
	r := &eventRegistry[I]{
		ordered:   ordered,
		defs:      byName,
		real:      make(map[string]*Listener),
		groups:    make(map[ExclusiveGroup]*exclusiveGroup),
		window:    def.DebounceWindow,
		scheduler: s,
		attach:    def.On,
		detach:    def.Un,
		logical:   make(map[string]Handler),
	}
	if r.attach == nil {
		r.attach = func(instance I, event string, l *Listener, _ *Options[I]) {
			attachListener(any(instance), event, l)
		}
	}
	if r.detach == nil {
		r.detach = func(instance I, event string, l *Listener, _ *Options[I]) {
			detachListener(any(instance), event, l)
		}
	}
	return r, nil
}

func (r *eventRegistry[I]) has(event string) bool {
	_, ok := r.defs[event]
	return ok
}

func (r *eventRegistry[I]) bound(event string) bool {
	_, ok := r.real[event]
	return ok
}

// on binds the event if needed and installs handler as its logical handler.
func (r *eventRegistry[I]) on(b *Bridge[I], event string, handler Handler, opts *Options[I]) {
	def, ok := r.defs[event]
	if !ok {
		return
	}
	if _, bound := r.real[event]; !bound {
		l := r.realListener(def)
		r.real[event] = l
		r.attach(b.instance, event, l, opts)
	}
	if handler == nil {
		handler = noop
	}
	logical := def.CreateListener(b, handler, opts)
	if logical == nil {
		logical = noop
	}
	r.mu.Lock()
	r.logical[event] = logical
	r.mu.Unlock()
}

// un detaches the real listener and forgets the logical handler.
func (r *eventRegistry[I]) un(b *Bridge[I], event string, opts *Options[I]) {
	l, bound := r.real[event]
	if !bound {
		return
	}
	delete(r.real, event)
	r.detach(b.instance, event, l, opts)
	r.mu.Lock()
	delete(r.logical, event)
	r.mu.Unlock()
}

func (r *eventRegistry[I]) realListener(def Event[I]) *Listener {
	name := def.Name
	if def.Exclusive == "" {
		return NewListener(name, func(args ...any) {
			r.deliver(name, args)
		})
	}
	g := r.group(def.Exclusive)
	return NewListener(name, func(args ...any) {
		g.trigger(name, args)
	})
}

func (r *eventRegistry[I]) group(key ExclusiveGroup) *exclusiveGroup {
	if g, ok := r.groups[key]; ok {
		return g
	}
	g := newExclusiveGroup(r.window, r.scheduler, r.deliverDeferred)
	r.groups[key] = g
	return g
}

func (r *eventRegistry[I]) handler(event string) Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logical[event]
}

func (r *eventRegistry[I]) deliver(event string, args []any) {
	if h := r.handler(event); h != nil {
		h(args...)
	}
}

// deliverDeferred runs a debounced delivery. There is no caller to return a
// panic to, so it is reported instead.
func (r *eventRegistry[I]) deliverDeferred(event string, args []any) {
	defer errors.Recover("bridge.exclusive")
	r.deliver(event, args)
}

// update rebinds handler-less events every pass and handler events only
// when the handler prop changed identity.
func (r *eventRegistry[I]) update(b *Bridge[I], newProps, oldProps Props, opts *Options[I]) error {
	for _, e := range r.ordered {
		if e.HandlerName == "" {
			r.on(b, e.Name, nil, opts)
			continue
		}
		next := newProps[e.HandlerName]
		if Same(next, oldProps[e.HandlerName]) {
			continue
		}
		r.on(b, e.Name, AsHandler(next), opts)
	}
	return nil
}

func (r *eventRegistry[I]) destroy(b *Bridge[I], opts *Options[I]) {
	for _, e := range r.ordered {
		r.un(b, e.Name, opts)
	}
	for _, g := range r.groups {
		g.cancel()
	}
	r.mu.Lock()
	r.logical = make(map[string]Handler)
	r.mu.Unlock()
	r.ordered = nil
	r.defs = nil
	r.real = nil
	r.groups = nil
}

func noop(...any) {}
