// Package host implements the lifecycle contract between a declarative host
// and a bridge: create the instance once, update it on every render,
// recreate it when a recreation trigger changes and destroy it on unmount.
package host

import (
	stderrors "errors"
	"sync"
	"time"

	"github.com/go-drift/bridge/pkg/bridge"
	"github.com/go-drift/bridge/pkg/dispatch"
	"github.com/go-drift/bridge/pkg/element"
	"github.com/go-drift/bridge/pkg/errors"
)

// InitializeProp is the prop called with every newly created instance.
// It may hold a func(I), or anything bridge.AsHandler accepts.
const InitializeProp = "onInitialize"

// ErrUnmounted is wrapped by errors returned from Render after Unmount.
var ErrUnmounted = stderrors.New("mount unmounted")

// Factory creates the instance for a mount.
type Factory[I any] func() (I, error)

// Existing returns a factory that always yields instance. Recreation hands
// the same instance to a fresh bridge.
func Existing[I any](instance I) Factory[I] {
	return func() (I, error) { return instance, nil }
}

// Tag returns a factory creating a new element with the given tag.
func Tag(tag string) Factory[*element.Element] {
	return func() (*element.Element, error) { return element.New(tag), nil }
}

// Target is the container an instance is attached to once created.
type Target[I any] interface {
	AppendChild(child I)
}

// Options configures a Mount.
type Options[I any] struct {
	// Target receives each created instance. Nil leaves instances detached.
	Target Target[I]

	// RenderingDelay postpones attaching to Target. Zero or negative attaches
	// immediately. A pending attach is cancelled if the instance is torn down
	// first.
	RenderingDelay time.Duration

	// Ref is called with each created instance and with the zero value when
	// it is torn down.
	Ref func(instance I)

	// Scheduler runs delayed attachment and the bridge's exclusive events.
	// Defaults to dispatch.Default(), whose callbacks run through
	// dispatch.Run on the UI thread.
	Scheduler dispatch.Scheduler

	// Values are passed to every bridge call the mount makes.
	Values bridge.Values
}

// Mount drives one bridged instance across renders. It is not safe for
// concurrent use; call it from the UI thread.
type Mount[I any] struct {
	factory Factory[I]
	def     *bridge.Definition[I]
	opts    Options[I]

	bridge   *bridge.Bridge[I]
	triggers []any

	mu        sync.Mutex
	attach    dispatch.Timer
	attachSeq uint64

	unmounted bool
}

// NewMount returns a mount that creates instances with factory and binds
// them with def. Nothing is created until the first Render.
func NewMount[I any](factory Factory[I], def *bridge.Definition[I], opts Options[I]) *Mount[I] {
	if opts.Scheduler == nil {
		opts.Scheduler = dispatch.Default()
	}
	return &Mount[I]{
		factory: factory,
		def:     def,
		opts:    opts,
	}
}

// Render applies props. The first render, and any render where a
// recreation trigger changed identity, destroys the previous bridge (if any)
// and creates a new instance; other renders update the existing bridge.
// It returns the current instance.
func (m *Mount[I]) Render(props bridge.Props) (I, error) {
	var zero I
	if m.unmounted {
		return zero, errors.New("host.Render", errors.KindLifecycle, "", ErrUnmounted)
	}
	if m.bridge != nil && !m.triggersChanged(props) {
		if err := m.bridge.Update(props, m.opts.Values); err != nil {
			return m.bridge.Instance(), err
		}
		return m.bridge.Instance(), nil
	}
	if m.bridge != nil {
		if err := m.teardown(); err != nil {
			return zero, err
		}
	}
	return m.create(props)
}

// Unmount destroys the current bridge and cancels a pending attach. Calling
// it again does nothing.
func (m *Mount[I]) Unmount() error {
	if m.unmounted {
		return nil
	}
	m.unmounted = true
	if m.bridge == nil {
		return nil
	}
	return m.teardown()
}

// Bridge returns the current bridge, or nil before the first successful
// render and after Unmount.
func (m *Mount[I]) Bridge() *bridge.Bridge[I] { return m.bridge }

// Instance returns the current instance, or the zero value.
func (m *Mount[I]) Instance() I {
	if m.bridge == nil {
		var zero I
		return zero
	}
	return m.bridge.Instance()
}

func (m *Mount[I]) create(props bridge.Props) (I, error) {
	var zero I
	instance, err := m.factory()
	if err != nil {
		return zero, errors.New("host.Render", errors.KindCallback, "", err)
	}
	b, err := bridge.New(instance, m.def, props,
		bridge.WithScheduler(m.opts.Scheduler),
		bridge.WithValues(m.opts.Values),
	)
	if err != nil {
		return zero, err
	}
	m.bridge = b
	m.triggers = m.snapshotTriggers(props)

	m.attachTo(instance)
	if m.opts.Ref != nil {
		m.opts.Ref(instance)
	}
	initialize(props[InitializeProp], instance)
	return instance, nil
}

func initialize[I any](v any, instance I) {
	if v == nil {
		return
	}
	if fn, ok := v.(func(I)); ok {
		fn(instance)
		return
	}
	if h := bridge.AsHandler(v); h != nil {
		h(instance)
	}
}

func (m *Mount[I]) attachTo(instance I) {
	target := m.opts.Target
	if target == nil {
		return
	}
	if m.opts.RenderingDelay <= 0 {
		target.AppendChild(instance)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.attachSeq++
	seq := m.attachSeq
	m.attach = m.opts.Scheduler.AfterFunc(m.opts.RenderingDelay, func() {
		m.mu.Lock()
		if m.attachSeq != seq {
			m.mu.Unlock()
			return
		}
		m.attach = nil
		m.mu.Unlock()
		target.AppendChild(instance)
	})
}

func (m *Mount[I]) cancelAttach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attachSeq++
	if m.attach != nil {
		m.attach.Stop()
		m.attach = nil
	}
}

func (m *Mount[I]) teardown() error {
	m.cancelAttach()
	b := m.bridge
	m.bridge = nil
	m.triggers = nil
	err := b.Destroy(m.opts.Values)
	if m.opts.Ref != nil {
		var zero I
		m.opts.Ref(zero)
	}
	return err
}

func (m *Mount[I]) snapshotTriggers(props bridge.Props) []any {
	if m.def == nil {
		return nil
	}
	out := make([]any, len(m.def.RecreationTriggers))
	for i, name := range m.def.RecreationTriggers {
		out[i] = props[name]
	}
	return out
}

func (m *Mount[I]) triggersChanged(props bridge.Props) bool {
	for i, name := range m.def.RecreationTriggers {
		if !bridge.Same(props[name], m.triggers[i]) {
			return true
		}
	}
	return false
}
