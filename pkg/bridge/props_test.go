package bridge_test

import (
	"testing"

	"github.com/go-drift/bridge/pkg/bridge"
)

type point struct{ X, Y int }

type withSlice struct{ Items []int }

func TestSame(t *testing.T) {
	m := map[string]int{"a": 1}
	s := []int{1, 2, 3}
	p := &point{1, 2}
	n := 0
	f := func() { n++ }
	g := func() { n-- }
	var nilFunc func()

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"equal ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"int vs int64", 1, int64(1), false},
		{"equal strings", "a", "a", true},
		{"equal structs", point{1, 2}, point{1, 2}, true},
		{"same map", m, m, true},
		{"equal-shaped maps", m, map[string]int{"a": 1}, false},
		{"same slice", s, s, true},
		{"resliced", s, s[:2], false},
		{"same pointer", p, p, true},
		{"equal pointees", p, &point{1, 2}, false},
		{"same func", f, f, true},
		{"different funcs", f, g, false},
		{"nil funcs", nilFunc, nilFunc, true},
		{"uncomparable struct", withSlice{s}, withSlice{s}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bridge.Same(tt.a, tt.b); got != tt.want {
				t.Errorf("Same(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSameDistinguishesClosuresFromOneLiteral(t *testing.T) {
	mk := func(v int) func() int { return func() int { return v } }
	a, b := mk(1), mk(1)
	if bridge.Same(a, b) {
		t.Error("two closures from one literal compared as the same")
	}
	if !bridge.Same(a, a) {
		t.Error("a closure is not the same as itself")
	}
}

func TestPropsClone(t *testing.T) {
	var nilProps bridge.Props
	if c := nilProps.Clone(); c == nil {
		t.Error("Clone of nil props should be an empty map")
	}
	p := bridge.Props{"a": 1}
	c := p.Clone()
	c["a"] = 2
	if p["a"] != 1 {
		t.Error("Clone shares storage with the original")
	}
}

func TestAsHandler(t *testing.T) {
	var got []any
	tests := []struct {
		name string
		in   any
		args []any
		want []any
	}{
		{"variadic", func(args ...any) { got = args }, []any{1, 2}, []any{1, 2}},
		{"handler", bridge.Handler(func(args ...any) { got = args }), []any{"x"}, []any{"x"}},
		{"no args", func() { got = []any{"called"} }, []any{1}, []any{"called"}},
		{"single any", func(v any) { got = []any{v} }, []any{7, 8}, []any{7}},
		{"typed", func(s string, n int) { got = []any{s, n} }, []any{"a", 3}, []any{"a", 3}},
		{"typed missing arg", func(s string, n int) { got = []any{s, n} }, []any{"a"}, []any{"a", 0}},
		{"typed mismatched arg", func(n int) { got = []any{n} }, []any{"nope"}, []any{0}},
		{"typed convertible", func(n float64) { got = []any{n} }, []any{2}, []any{2.0}},
		{"typed variadic", func(p string, rest ...int) { got = []any{p, len(rest)} }, []any{"p", 1, 2}, []any{"p", 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			h := bridge.AsHandler(tt.in)
			if h == nil {
				t.Fatal("AsHandler returned nil")
			}
			h(tt.args...)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k := range got {
				if got[k] != tt.want[k] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestAsHandlerRejectsNonFuncs(t *testing.T) {
	var nilFunc func()
	for _, v := range []any{nil, 1, "onClick", nilFunc} {
		if bridge.AsHandler(v) != nil {
			t.Errorf("AsHandler(%#v) should be nil", v)
		}
	}
}
