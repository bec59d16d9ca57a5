package bridge

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidDefinition is wrapped by errors returned from New when the
// definition cannot be normalized.
var ErrInvalidDefinition = errors.New("invalid definition")

// Definition describes how props map onto one kind of instance. It is
// authored once per instance type and never mutated by a bridge.
type Definition[I any] struct {
	// Accessors are the named get/set pairs. At most one per name.
	Accessors []Accessor[I]

	// Effects run, in order, when any of their trigger props change.
	Effects []Effect[I]

	// Events route instance events to handler props. At most one per name.
	Events []Event[I]

	// RecreationTriggers name props whose change requires a new instance.
	// The bridge itself ignores them; host.Mount acts on them.
	RecreationTriggers []string

	// DebounceWindow is the quiet period for exclusive event groups.
	// Zero delivers on the next scheduler turn.
	DebounceWindow time.Duration

	// On attaches a real listener to the instance. Defaults to
	// EventTarget.AddListener when the instance implements it.
	On func(instance I, event string, l *Listener, opts *Options[I])

	// Un detaches a real listener. Defaults to EventTarget.RemoveListener.
	Un func(instance I, event string, l *Listener, opts *Options[I])

	// Destructor releases the instance after the features are torn down.
	// Defaults to Remover.Remove.
	Destructor func(instance I, opts *Options[I])
}

// Accessor is a named get/set pair with a change-detection policy.
//
// An Accessor with neither Get nor Set is shorthand for an attribute
// accessor: it reads through AttributeGetter and writes through
// AttributeSetter, silently doing nothing on instances lacking either.
type Accessor[I any] struct {
	Name string

	Get func(instance I, props Props, opts *Options[I]) any
	Set func(instance I, props Props, value any, opts *Options[I])

	// Validate guards the instance against values it cannot accept. It sees
	// the value after ConvertTo. Rejected writes are dropped silently.
	Validate func(value any) bool

	// ConvertFrom maps instance values to prop values on Get.
	ConvertFrom func(value any) any
	// ConvertTo maps prop values to instance values on Set.
	ConvertTo func(value any) any

	// DeepComparison compares against the last observed value structurally
	// instead of by identity.
	DeepComparison bool
	// AlwaysSet forwards every Set and disables the observed-value cache.
	AlwaysSet bool
}

// Attr returns the shorthand attribute accessor for name.
func Attr[I any](name string) Accessor[I] {
	return Accessor[I]{Name: name}
}

// Effect runs Callback when any prop in PropNames changes identity between
// two updates.
//
// An Effect with a nil Callback mirrors each named prop into the accessor of
// the same name.
type Effect[I any] struct {
	PropNames []string
	Callback  func(b *Bridge[I], props, oldProps Props, opts *Options[I]) error
}

// Mirror returns the shorthand effect that copies prop name into the
// accessor of the same name whenever it changes.
func Mirror[I any](name string) Effect[I] {
	return Effect[I]{PropNames: []string{name}}
}

// ExclusiveGroup names a set of events whose delivery is debounced together.
// The empty group means the event is delivered synchronously.
type ExclusiveGroup string

// DefaultExclusive is the group shared by every event that is exclusive
// without naming a group.
const DefaultExclusive ExclusiveGroup = "\x00default"

// Event routes an instance event to a handler.
//
// An Event with only a Name is shorthand: the handler prop is "on" followed
// by the capitalized event name, and event arguments are passed to the
// handler unchanged.
type Event[I any] struct {
	Name string

	// HandlerName is the prop holding the handler. When empty the event is
	// (re)bound on every update with a no-op handler.
	HandlerName string

	// CreateListener wraps the handler prop into the logical handler the
	// real listener forwards to. Nil passes events straight through.
	CreateListener func(b *Bridge[I], handler Handler, opts *Options[I]) Handler

	Exclusive ExclusiveGroup
}

// On returns the shorthand event for name.
func On[I any](name string) Event[I] {
	return Event[I]{Name: name}
}

// HandlerNameFor returns the conventional handler prop for an event name,
// e.g. "change" maps to "onChange".
func HandlerNameFor(event string) string {
	return "on" + Capitalize(event)
}

// Capitalize upper-cases the first rune of s and leaves the rest untouched,
// so "mouseDown" becomes "MouseDown" and "focus-in" becomes "Focus-in".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}

func normalizeAccessors[I any](defs []Accessor[I]) (map[string]Accessor[I], error) {
	out := make(map[string]Accessor[I], len(defs))
	for i, a := range defs {
		if a.Name == "" {
			return nil, fmt.Errorf("%w: accessor %d has no name", ErrInvalidDefinition, i)
		}
		if _, dup := out[a.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate accessor %q", ErrInvalidDefinition, a.Name)
		}
		out[a.Name] = normalizeAccessor(a)
	}
	return out, nil
}

func normalizeAccessor[I any](a Accessor[I]) Accessor[I] {
	if a.Get != nil || a.Set != nil {
		return a
	}
	name := a.Name
	a.Get = func(instance I, _ Props, _ *Options[I]) any {
		if g, ok := any(instance).(AttributeGetter); ok {
			v, _ := g.Attribute(name)
			return v
		}
		return nil
	}
	a.Set = func(instance I, _ Props, value any, _ *Options[I]) {
		if s, ok := any(instance).(AttributeSetter); ok {
			s.SetAttribute(name, value)
		}
	}
	return a
}

func normalizeEffects[I any](defs []Effect[I]) ([]Effect[I], error) {
	out := make([]Effect[I], 0, len(defs))
	for i, e := range defs {
		if len(e.PropNames) == 0 {
			return nil, fmt.Errorf("%w: effect %d has no trigger props", ErrInvalidDefinition, i)
		}
		e.PropNames = append([]string(nil), e.PropNames...)
		if e.Callback == nil {
			names := e.PropNames
			e.Callback = func(b *Bridge[I], props, _ Props, opts *Options[I]) error {
				for _, name := range names {
					if err := b.Set(name, props[name], opts.Values); err != nil {
						return err
					}
				}
				return nil
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func normalizeEvents[I any](defs []Event[I]) ([]Event[I], map[string]Event[I], error) {
	ordered := make([]Event[I], 0, len(defs))
	byName := make(map[string]Event[I], len(defs))
	for i, e := range defs {
		if e.Name == "" {
			return nil, nil, fmt.Errorf("%w: event %d has no name", ErrInvalidDefinition, i)
		}
		if _, dup := byName[e.Name]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate event %q", ErrInvalidDefinition, e.Name)
		}
		if e.CreateListener == nil {
			if e.HandlerName == "" {
				e.HandlerName = HandlerNameFor(e.Name)
			}
			e.CreateListener = passThrough[I]
		}
		ordered = append(ordered, e)
		byName[e.Name] = e
	}
	return ordered, byName, nil
}

func passThrough[I any](_ *Bridge[I], handler Handler, _ *Options[I]) Handler {
	return handler
}
