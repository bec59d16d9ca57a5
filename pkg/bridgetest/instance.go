package bridgetest

import (
	"github.com/go-drift/bridge/pkg/bridge"
)

// Instance is a recording instance implementing every bridge capability.
// It counts attribute writes and listener changes so tests can assert how
// often the bridge touched it.
type Instance struct {
	Attrs     map[string]any
	Sets      map[string]int
	Adds      map[string]int
	Removes   map[string]int
	Listeners map[string]*bridge.Listener
	Removed   int
}

// NewInstance returns an empty recording instance.
func NewInstance() *Instance {
	return &Instance{
		Attrs:     make(map[string]any),
		Sets:      make(map[string]int),
		Adds:      make(map[string]int),
		Removes:   make(map[string]int),
		Listeners: make(map[string]*bridge.Listener),
	}
}

func (i *Instance) Attribute(name string) (any, bool) {
	v, ok := i.Attrs[name]
	return v, ok
}

func (i *Instance) SetAttribute(name string, value any) {
	i.Attrs[name] = value
	i.Sets[name]++
}

func (i *Instance) AddListener(event string, l *bridge.Listener) {
	i.Adds[event]++
	i.Listeners[event] = l
}

func (i *Instance) RemoveListener(event string, l *bridge.Listener) {
	i.Removes[event]++
	if i.Listeners[event] == l {
		delete(i.Listeners, event)
	}
}

func (i *Instance) Remove() { i.Removed++ }

// Fire delivers an event to the attached listener, if any. It reports
// whether a listener was attached.
func (i *Instance) Fire(event string, args ...any) bool {
	l, ok := i.Listeners[event]
	if !ok {
		return false
	}
	l.Call(args...)
	return true
}

// Bare is an instance with no capabilities at all.
type Bare struct{}
