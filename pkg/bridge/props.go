package bridge

import (
	"maps"
	"reflect"
	"unsafe"
)

// Props is a snapshot of declarative properties passed to a bridge.
type Props map[string]any

// Clone returns a shallow copy of p. A nil Props clones to an empty map.
func (p Props) Clone() Props {
	if p == nil {
		return Props{}
	}
	return maps.Clone(p)
}

// Values carries caller-supplied options through to definition callbacks.
type Values map[string]any

func mergeValues(vals []Values) Values {
	switch len(vals) {
	case 0:
		return nil
	case 1:
		return vals[0]
	}
	merged := make(Values)
	for _, v := range vals {
		maps.Copy(merged, v)
	}
	return merged
}

// Same reports whether a and b are the same value by identity.
//
// Comparable values compare with ==. Maps, pointers, channels and funcs
// compare by address, so two distinct closures are never the same even when
// built from the same literal. Slices compare by backing array and length.
// Values that are neither comparable nor reference-like are never the same.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func:
		return funcData(a) == funcData(b)
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}

// funcData returns the closure pointer stored in the interface data word.
// reflect.Value.Pointer only yields the code pointer for funcs, which is
// shared by every closure created from the same literal.
func funcData(f any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&f))[1]
}

// DeepEqual reports whether a and b are structurally equal.
func DeepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
