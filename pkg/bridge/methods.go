package bridge

import (
	"reflect"
	"sync"
)

// Subscriber is implemented by custom instances with their own event
// registration. Subscribe returns the function that cancels the subscription.
type Subscriber interface {
	Subscribe(event string, fn func(args ...any)) (unsubscribe func())
}

// MethodInstance adapts an arbitrary Go value to the capability interfaces
// through its methods:
//
//   - attribute "value" reads via GetValue() or Value() and writes via
//     SetValue(v);
//   - listeners attach via Subscribe when the value implements Subscriber;
//   - Remove calls the first of Remove, Destroy, Dispose or Close found.
//
// Missing methods degrade to no-ops.
type MethodInstance struct {
	target any
	value  reflect.Value

	mu   sync.Mutex
	subs map[*Listener]func()
}

// Methods wraps target in a MethodInstance.
func Methods(target any) *MethodInstance {
	return &MethodInstance{
		target: target,
		value:  reflect.ValueOf(target),
		subs:   make(map[*Listener]func()),
	}
}

// Target returns the wrapped value.
func (m *MethodInstance) Target() any { return m.target }

// Attribute calls the getter method for name.
func (m *MethodInstance) Attribute(name string) (any, bool) {
	title := Capitalize(name)
	for _, method := range []string{"Get" + title, title} {
		fn := m.method(method)
		if !fn.IsValid() {
			continue
		}
		ft := fn.Type()
		if ft.NumIn() != 0 || ft.NumOut() == 0 {
			continue
		}
		return fn.Call(nil)[0].Interface(), true
	}
	return nil, false
}

// SetAttribute calls the setter method for name. Values that cannot be
// passed to the setter are dropped.
func (m *MethodInstance) SetAttribute(name string, value any) {
	fn := m.method("Set" + Capitalize(name))
	if !fn.IsValid() {
		return
	}
	ft := fn.Type()
	if ft.NumIn() != 1 || ft.IsVariadic() {
		return
	}
	pt := ft.In(0)
	var arg reflect.Value
	switch {
	case value == nil:
		switch pt.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			arg = reflect.Zero(pt)
		default:
			return
		}
	default:
		v := reflect.ValueOf(value)
		switch {
		case v.Type().AssignableTo(pt):
			arg = v
		case v.Type().ConvertibleTo(pt) && v.Kind() != reflect.String && pt.Kind() != reflect.String:
			arg = v.Convert(pt)
		default:
			return
		}
	}
	fn.Call([]reflect.Value{arg})
}

// AddListener subscribes l when the target implements Subscriber.
func (m *MethodInstance) AddListener(event string, l *Listener) {
	s, ok := m.target.(Subscriber)
	if !ok {
		return
	}
	unsub := s.Subscribe(event, l.Call)
	m.mu.Lock()
	m.subs[l] = unsub
	m.mu.Unlock()
}

// RemoveListener cancels the subscription made for l.
func (m *MethodInstance) RemoveListener(_ string, l *Listener) {
	m.mu.Lock()
	unsub, ok := m.subs[l]
	delete(m.subs, l)
	m.mu.Unlock()
	if ok && unsub != nil {
		unsub()
	}
}

// Remove releases the target through its teardown method, if any.
func (m *MethodInstance) Remove() {
	for _, name := range []string{"Remove", "Destroy", "Dispose", "Close"} {
		fn := m.method(name)
		if !fn.IsValid() || fn.Type().NumIn() != 0 {
			continue
		}
		fn.Call(nil)
		return
	}
}

func (m *MethodInstance) method(name string) reflect.Value {
	if !m.value.IsValid() {
		return reflect.Value{}
	}
	return m.value.MethodByName(name)
}
