package bridge

type effectRegistry[I any] struct {
	defs []Effect[I]
}

func newEffectRegistry[I any](def *Definition[I]) (*effectRegistry[I], error) {
	defs, err := normalizeEffects(def.Effects)
	if err != nil {
		return nil, err
	}
	return &effectRegistry[I]{defs: defs}, nil
}

// update runs, in definition order, every effect with at least one changed
// trigger prop. The first callback error stops the pass and is returned as is.
func (r *effectRegistry[I]) update(b *Bridge[I], newProps, oldProps Props, opts *Options[I]) error {
	for _, e := range r.defs {
		if !anyChanged(e.PropNames, newProps, oldProps) {
			continue
		}
		if err := e.Callback(b, newProps, oldProps, opts); err != nil {
			return err
		}
	}
	return nil
}

func anyChanged(names []string, newProps, oldProps Props) bool {
	for _, name := range names {
		if !Same(newProps[name], oldProps[name]) {
			return true
		}
	}
	return false
}

func (r *effectRegistry[I]) destroy(*Bridge[I], *Options[I]) {
	r.defs = nil
}
