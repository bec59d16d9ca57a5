package convert

import (
	"image/color"
	"slices"
	"testing"
	"time"
)

func TestConverters(t *testing.T) {
	tests := []struct {
		name string
		fn   Func
		in   any
		want any
	}{
		{"int from int", ToInt, 3, 3},
		{"int from float", ToInt, 3.9, 3},
		{"int from string", ToInt, " 42 ", 42},
		{"int from float string", ToInt, "2.5", 2},
		{"int unconvertible", ToInt, "x", "x"},
		{"float from int", ToFloat, 2, 2.0},
		{"float from string", ToFloat, "1.5", 1.5},
		{"float unconvertible", ToFloat, true, true},
		{"bool from string", ToBool, "true", true},
		{"bool from zero", ToBool, 0, false},
		{"bool from number", ToBool, 2.5, true},
		{"bool unconvertible", ToBool, "maybe", "maybe"},
		{"string from int", ToString, 7, "7"},
		{"string from float", ToString, 0.5, "0.5"},
		{"string from bytes", ToString, []byte("ab"), "ab"},
		{"string from bool", ToString, false, "false"},
		{"string from nil", ToString, nil, nil},
		{"duration from string", ToDuration, "150ms", 150 * time.Millisecond},
		{"duration from millis", ToDuration, 20, 20 * time.Millisecond},
		{"duration unconvertible", ToDuration, "soon", "soon"},
		{"duration to string", FromDuration, 2 * time.Second, "2s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"red", color.RGBA{0xff, 0, 0, 0xff}, true},
		{" SteelBlue ", color.RGBA{0x46, 0x82, 0xb4, 0xff}, true},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"#0f08", color.RGBA{0, 0xff, 0, 0x88}, true},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 0xff}, true},
		{"#10203040", color.RGBA{0x10, 0x20, 0x30, 0x40}, true},
		{"#12345", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	c := ToColor("#336699")
	if got := FromColor(c); got != "#336699" {
		t.Errorf("FromColor = %v, want #336699", got)
	}
	if got := FromColor(color.RGBA{1, 2, 3, 4}); got != "#01020304" {
		t.Errorf("FromColor translucent = %v", got)
	}
	if got := ToColor(color.Gray{Y: 0x80}); got != (color.RGBA{0x80, 0x80, 0x80, 0xff}) {
		t.Errorf("ToColor(gray) = %v", got)
	}
	if got := ToColor(12); got != 12 {
		t.Errorf("ToColor(12) = %v, want input unchanged", got)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"bool", "color", "duration", "float", "int", "string"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("converter %q not registered", name)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("unknown converter found")
	}

	Register(Converter{Name: "upper-test", To: func(v any) any { return v.(string) + "!" }})
	t.Cleanup(func() {
		registryMu.Lock()
		delete(registry, "upper-test")
		registryMu.Unlock()
	})
	c, ok := Lookup("upper-test")
	if !ok || c.To("a") != "a!" || c.From("a") != "a" {
		t.Error("registered converter not usable or From not defaulted to identity")
	}
	if !slices.IsSorted(Names()) {
		t.Error("Names not sorted")
	}
	Register(Converter{})
	if slices.Contains(Names(), "") {
		t.Error("unnamed converter registered")
	}
}
