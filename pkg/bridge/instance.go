package bridge

// AttributeGetter is implemented by instances that expose attribute-style
// reads. Shorthand accessors use it; instances without it read as nil.
type AttributeGetter interface {
	Attribute(name string) (any, bool)
}

// AttributeSetter is implemented by instances that expose attribute-style
// writes. Shorthand accessors use it; instances without it ignore writes.
type AttributeSetter interface {
	SetAttribute(name string, value any)
}

// EventTarget is implemented by instances that accept event listeners.
// Listeners are identified by pointer, so the same *Listener passed to
// AddListener is passed to RemoveListener.
type EventTarget interface {
	AddListener(event string, l *Listener)
	RemoveListener(event string, l *Listener)
}

// Remover is implemented by instances that can remove themselves from their
// host. The default destructor calls Remove when it is available.
type Remover interface {
	Remove()
}

// Handler is an event callback. Handler props may also be func(), func(any)
// or any other func type; see AsHandler.
type Handler func(args ...any)

// Listener is the real listener a bridge attaches to an instance for one
// event. It forwards every call to whatever logical handler is currently
// registered for that event.
type Listener struct {
	event string
	fn    func(args ...any)
}

// NewListener returns a listener for event that calls fn.
func NewListener(event string, fn func(args ...any)) *Listener {
	return &Listener{event: event, fn: fn}
}

// Event returns the event name the listener was created for.
func (l *Listener) Event() string { return l.event }

// Call delivers an event to the listener.
func (l *Listener) Call(args ...any) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(args...)
}

func attachListener(instance any, event string, l *Listener) {
	if t, ok := instance.(EventTarget); ok {
		t.AddListener(event, l)
	}
}

func detachListener(instance any, event string, l *Listener) {
	if t, ok := instance.(EventTarget); ok {
		t.RemoveListener(event, l)
	}
}

func removeInstance(instance any) {
	if r, ok := instance.(Remover); ok {
		r.Remove()
	}
}
