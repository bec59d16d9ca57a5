package bridge

import (
	stderrors "errors"

	"github.com/go-drift/bridge/pkg/dispatch"
	"github.com/go-drift/bridge/pkg/errors"
)

var (
	// ErrDestroyed is wrapped by every error returned from a call on a
	// destroyed Bridge.
	ErrDestroyed = stderrors.New("bridge destroyed")

	// ErrNilDefinition is returned by New when no definition is given.
	ErrNilDefinition = stderrors.New("nil definition")
)

// feature is one of the registries a bridge fans updates out to.
type feature[I any] interface {
	update(b *Bridge[I], newProps, oldProps Props, opts *Options[I]) error
	destroy(b *Bridge[I], opts *Options[I])
}

// Bridge binds one imperative instance to a stream of props.
type Bridge[I any] struct {
	instance   I
	definition *Definition[I]
	props      Props

	accessors *accessorRegistry[I]
	effects   *effectRegistry[I]
	events    *eventRegistry[I]
	// features run in this order on every update: accessor, effect, event.
	features []feature[I]

	destructor func(instance I, opts *Options[I])

	initialized bool
	destroyed   bool
}

// New creates a bridge for instance and applies props as the first update.
// The bridge owns instance from here on and releases it on Destroy.
//
// If the initial update fails, the partially bound bridge is torn down
// (without running the instance destructor) and the error is returned.
func New[I any](instance I, def *Definition[I], props Props, opts ...Option) (*Bridge[I], error) {
	if def == nil {
		return nil, errors.New("bridge.New", errors.KindDefinition, "", ErrNilDefinition)
	}
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scheduler == nil {
		cfg.scheduler = dispatch.Default()
	}

	accessors, err := newAccessorRegistry(def)
	if err != nil {
		return nil, errors.New("bridge.New", errors.KindDefinition, "", err)
	}
	effects, err := newEffectRegistry(def)
	if err != nil {
		return nil, errors.New("bridge.New", errors.KindDefinition, "", err)
	}
	events, err := newEventRegistry(def, cfg.scheduler)
	if err != nil {
		return nil, errors.New("bridge.New", errors.KindDefinition, "", err)
	}

	b := &Bridge[I]{
		instance:   instance,
		definition: def,
		props:      Props{},
		accessors:  accessors,
		effects:    effects,
		events:     events,
		destructor: def.Destructor,
	}
	b.features = []feature[I]{accessors, effects, events}
	if b.destructor == nil {
		b.destructor = func(instance I, _ *Options[I]) {
			removeInstance(any(instance))
		}
	}

	if err := b.Update(props, cfg.values); err != nil {
		o := b.options(cfg.values)
		for _, f := range b.features {
			f.destroy(b, o)
		}
		return nil, err
	}
	b.initialized = true
	return b, nil
}

// Instance returns the bridged instance.
func (b *Bridge[I]) Instance() I { return b.instance }

// Definition returns the definition the bridge was built from.
func (b *Bridge[I]) Definition() *Definition[I] { return b.definition }

// Props returns a copy of the current props snapshot.
func (b *Bridge[I]) Props() Props { return b.props.Clone() }

// Initialized reports whether the initial update has completed.
func (b *Bridge[I]) Initialized() bool { return b.initialized }

// Destroyed reports whether Destroy has run. It never reverts to false.
func (b *Bridge[I]) Destroyed() bool { return b.destroyed }

// Update applies a new props snapshot. Registries run in a fixed order:
// accessors, effects, events. The stored snapshot is replaced in full once
// every registry has run; if an effect callback fails, its error is returned
// unchanged and the previous snapshot is kept.
func (b *Bridge[I]) Update(props Props, vals ...Values) error {
	if b.destroyed {
		return b.destroyedError("bridge.Update", "")
	}
	o := b.options(vals...)
	newProps := props.Clone()
	oldProps := b.props.Clone()
	for _, f := range b.features {
		if err := f.update(b, newProps, oldProps, o); err != nil {
			return err
		}
	}
	b.props = newProps
	return nil
}

// Get reads an accessor. Unknown accessors read as nil.
func (b *Bridge[I]) Get(name string, vals ...Values) (any, error) {
	if b.destroyed {
		return nil, b.destroyedError("bridge.Get", name)
	}
	return b.accessors.get(b.instance, b.props, name, b.options(vals...)), nil
}

// Set writes an accessor. Writes to unknown or read-only accessors, writes
// that repeat the last observed value and writes rejected by the accessor's
// validator are dropped.
func (b *Bridge[I]) Set(name string, value any, vals ...Values) error {
	if b.destroyed {
		return b.destroyedError("bridge.Set", name)
	}
	b.accessors.set(b.instance, b.props, name, value, b.options(vals...))
	return nil
}

// On binds event to handler. The instance sees at most one listener per
// event no matter how often On is called. Unknown events are ignored.
func (b *Bridge[I]) On(event string, handler Handler, vals ...Values) error {
	if b.destroyed {
		return b.destroyedError("bridge.On", event)
	}
	b.events.on(b, event, handler, b.options(vals...))
	return nil
}

// Un detaches the instance listener for event, if bound.
func (b *Bridge[I]) Un(event string, vals ...Values) error {
	if b.destroyed {
		return b.destroyedError("bridge.Un", event)
	}
	b.events.un(b, event, b.options(vals...))
	return nil
}

// Bound reports whether a real listener is attached for event.
func (b *Bridge[I]) Bound(event string) bool {
	if b.destroyed {
		return false
	}
	return b.events.bound(event)
}

// HasAccessor reports whether the definition declares accessor name.
func (b *Bridge[I]) HasAccessor(name string) bool {
	return !b.destroyed && b.accessors.has(name)
}

// HasEvent reports whether the definition declares event name.
func (b *Bridge[I]) HasEvent(event string) bool {
	return !b.destroyed && b.events.has(event)
}

// Destroy tears down every feature, cancels pending exclusive deliveries,
// runs the instance destructor and releases the instance. A second call
// returns an error wrapping ErrDestroyed.
func (b *Bridge[I]) Destroy(vals ...Values) error {
	if b.destroyed {
		return b.destroyedError("bridge.Destroy", "")
	}
	o := b.options(vals...)
	for _, f := range b.features {
		f.destroy(b, o)
	}
	b.destructor(b.instance, o)

	var zero I
	b.instance = zero
	b.definition = nil
	b.props = nil
	b.features = nil
	b.accessors = nil
	b.effects = nil
	b.events = nil
	b.destructor = nil
	b.destroyed = true
	return nil
}

func (b *Bridge[I]) options(vals ...Values) *Options[I] {
	return &Options[I]{Bridge: b, Values: mergeValues(vals)}
}

func (b *Bridge[I]) destroyedError(op, name string) error {
	return errors.New(op, errors.KindLifecycle, name, ErrDestroyed)
}
