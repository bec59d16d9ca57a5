package bridge

import "reflect"

// AsHandler adapts a handler prop to a Handler. It accepts Handler,
// func(...any), func(), func(any) and any other func type; for the latter,
// event arguments are passed positionally when assignable and missing or
// mismatched parameters receive zero values. Anything else yields nil.
func AsHandler(v any) Handler {
	switch h := v.(type) {
	case nil:
		return nil
	case Handler:
		return h
	case func(...any):
		return h
	case func():
		if h == nil {
			return nil
		}
		return func(...any) { h() }
	case func(any):
		if h == nil {
			return nil
		}
		return func(args ...any) {
			var first any
			if len(args) > 0 {
				first = args[0]
			}
			h(first)
		}
	}

	fn := reflect.ValueOf(v)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil
	}
	ft := fn.Type()
	return func(args ...any) {
		if ft.IsVariadic() {
			fn.Call(variadicArgs(ft, args))
			return
		}
		in := make([]reflect.Value, ft.NumIn())
		for i := range in {
			in[i] = argValue(ft.In(i), args, i)
		}
		fn.Call(in)
	}
}

func argValue(t reflect.Type, args []any, i int) reflect.Value {
	if i < len(args) && args[i] != nil {
		av := reflect.ValueOf(args[i])
		if av.Type().AssignableTo(t) {
			return av
		}
		if av.Type().ConvertibleTo(t) && av.Kind() != reflect.String && t.Kind() != reflect.String {
			return av.Convert(t)
		}
	}
	return reflect.Zero(t)
}

func variadicArgs(ft reflect.Type, args []any) []reflect.Value {
	fixed := ft.NumIn() - 1
	in := make([]reflect.Value, 0, max(fixed, len(args)))
	for i := 0; i < fixed; i++ {
		in = append(in, argValue(ft.In(i), args, i))
	}
	elem := ft.In(fixed).Elem()
	for i := fixed; i < len(args); i++ {
		in = append(in, argValue(elem, args, i))
	}
	return in
}
