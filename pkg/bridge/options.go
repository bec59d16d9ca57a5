package bridge

import "github.com/go-drift/bridge/pkg/dispatch"

// Options is passed to every definition callback. It carries the caller's
// values and the bridge that owns the call.
type Options[I any] struct {
	Bridge *Bridge[I]
	Values Values
}

// Value returns the caller-supplied value for key, or nil.
func (o *Options[I]) Value(key string) any {
	if o == nil {
		return nil
	}
	return o.Values[key]
}

// Option configures a Bridge at construction.
type Option func(*config)

type config struct {
	scheduler dispatch.Scheduler
	values    Values
}

// WithScheduler sets the scheduler used for debounced exclusive delivery.
// Defaults to dispatch.Default().
func WithScheduler(s dispatch.Scheduler) Option {
	return func(c *config) { c.scheduler = s }
}

// WithValues sets the values passed to callbacks during the initial update.
func WithValues(v Values) Option {
	return func(c *config) { c.values = v }
}
