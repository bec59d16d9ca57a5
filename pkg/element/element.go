// Package element provides a DOM-like element: a tagged node with
// attributes, event listeners and children. It implements every bridge
// capability and is the instance created when a host mounts by tag name.
package element

import (
	"slices"
	"sync"

	"github.com/go-drift/bridge/pkg/bridge"
)

// Element is a DOM-like node.
type Element struct {
	mu        sync.RWMutex
	tag       string
	attrs     map[string]any
	listeners map[string][]*bridge.Listener
	children  []*Element
	parent    *Element
}

// New creates a detached element with the given tag.
func New(tag string) *Element {
	return &Element{
		tag:       tag,
		attrs:     make(map[string]any),
		listeners: make(map[string][]*bridge.Listener),
	}
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// Attribute returns the named attribute.
func (e *Element) Attribute(name string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttribute sets the named attribute. Setting nil removes it.
func (e *Element) SetAttribute(name string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if value == nil {
		delete(e.attrs, name)
		return
	}
	e.attrs[name] = value
}

// Attributes returns a copy of all attributes.
func (e *Element) Attributes() map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]any, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// AddListener registers l for event. Registering the same listener twice
// has no effect.
func (e *Element) AddListener(event string, l *bridge.Listener) {
	if l == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if slices.Contains(e.listeners[event], l) {
		return
	}
	e.listeners[event] = append(e.listeners[event], l)
}

// RemoveListener unregisters l for event.
func (e *Element) RemoveListener(event string, l *bridge.Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := e.listeners[event]
	if i := slices.Index(list, l); i >= 0 {
		list = slices.Delete(slices.Clone(list), i, i+1)
	}
	if len(list) == 0 {
		delete(e.listeners, event)
		return
	}
	e.listeners[event] = list
}

// ListenerCount returns the number of listeners registered for event.
func (e *Element) ListenerCount(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[event])
}

// Dispatch calls every listener registered for event, in registration
// order, and returns how many were called. Listeners added or removed by a
// listener take effect from the next dispatch.
func (e *Element) Dispatch(event string, args ...any) int {
	e.mu.RLock()
	list := slices.Clone(e.listeners[event])
	e.mu.RUnlock()
	for _, l := range list {
		l.Call(args...)
	}
	return len(list)
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	child.Remove()
	e.mu.Lock()
	e.children = append(e.children, child)
	e.mu.Unlock()
	child.mu.Lock()
	child.parent = e
	child.mu.Unlock()
}

// RemoveChild detaches child if it is one of e's children.
func (e *Element) RemoveChild(child *Element) {
	e.mu.Lock()
	i := slices.Index(e.children, child)
	if i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
	e.mu.Unlock()
	if i < 0 {
		return
	}
	child.mu.Lock()
	child.parent = nil
	child.mu.Unlock()
}

// Children returns a copy of e's children.
func (e *Element) Children() []*Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.children)
}

// Parent returns e's parent, or nil when detached.
func (e *Element) Parent() *Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if p := e.Parent(); p != nil {
		p.RemoveChild(e)
	}
}
