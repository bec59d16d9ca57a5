package bridge

// accessorRegistry routes get/set calls through accessor definitions and
// suppresses writes that would only echo the last observed value back to the
// instance.
type accessorRegistry[I any] struct {
	defs map[string]Accessor[I]
	// latest holds the last value observed through Get or forwarded by Set,
	// in prop space. A missing entry compares as nil.
	latest map[string]any
}

func newAccessorRegistry[I any](def *Definition[I]) (*accessorRegistry[I], error) {
	defs, err := normalizeAccessors(def.Accessors)
	if err != nil {
		return nil, err
	}
	return &accessorRegistry[I]{
		defs:   defs,
		latest: make(map[string]any),
	}, nil
}

func (r *accessorRegistry[I]) has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

func (r *accessorRegistry[I]) get(instance I, props Props, name string, opts *Options[I]) any {
	a, ok := r.defs[name]
	if !ok || a.Get == nil {
		return nil
	}
	v := a.Get(instance, props, opts)
	if a.ConvertFrom != nil {
		v = a.ConvertFrom(v)
	}
	if !a.AlwaysSet {
		r.latest[name] = v
	}
	return v
}

func (r *accessorRegistry[I]) set(instance I, props Props, name string, value any, opts *Options[I]) {
	a, ok := r.defs[name]
	if !ok || a.Set == nil {
		return
	}
	if !a.AlwaysSet {
		cached := r.latest[name]
		if a.DeepComparison {
			if DeepEqual(cached, value) {
				return
			}
		} else if Same(cached, value) {
			return
		}
	}
	converted := value
	if a.ConvertTo != nil {
		converted = a.ConvertTo(value)
	}
	if a.Validate != nil && !a.Validate(converted) {
		return
	}
	a.Set(instance, props, converted, opts)
	if !a.AlwaysSet {
		r.latest[name] = value
	}
}

// update is a no-op: accessors only react to explicit get/set calls.
func (r *accessorRegistry[I]) update(*Bridge[I], Props, Props, *Options[I]) error {
	return nil
}

func (r *accessorRegistry[I]) destroy(*Bridge[I], *Options[I]) {
	r.defs = nil
	r.latest = nil
}
