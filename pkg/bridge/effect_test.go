package bridge_test

import (
	"errors"
	"testing"

	"github.com/go-drift/bridge/pkg/bridge"
	"github.com/go-drift/bridge/pkg/bridgetest"
)

func TestEffectFiresOnlyOnChange(t *testing.T) {
	calls := 0
	i := bridgetest.NewInstance()
	b := newBridge(t, i, &bridge.Definition[inst]{
		Effects: []bridge.Effect[inst]{{
			PropNames: []string{"x"},
			Callback: func(*bridge.Bridge[inst], bridge.Props, bridge.Props, *bridge.Options[inst]) error {
				calls++
				return nil
			},
		}},
	}, bridge.Props{"x": 1})

	if calls != 1 {
		t.Fatalf("calls after construction = %d, want 1", calls)
	}
	if err := b.Update(bridge.Props{"x": 1}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("calls after unchanged update = %d, want 1", calls)
	}
	if err := b.Update(bridge.Props{"x": 2}); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("calls after changed update = %d, want 2", calls)
	}
}

func TestEffectFiresOncePerDefinition(t *testing.T) {
	var got []bridge.Props
	i := bridgetest.NewInstance()
	b := newBridge(t, i, &bridge.Definition[inst]{
		Effects: []bridge.Effect[inst]{{
			PropNames: []string{"a", "b"},
			Callback: func(_ *bridge.Bridge[inst], props, old bridge.Props, _ *bridge.Options[inst]) error {
				got = append(got, old)
				return nil
			},
		}},
	}, bridge.Props{"a": 1, "b": 1})

	if err := b.Update(bridge.Props{"a": 2, "b": 2}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("calls = %d, want 2 (construction + one update)", len(got))
	}
	if got[1]["a"] != 1 {
		t.Errorf("old props a = %v, want 1", got[1]["a"])
	}
}

func TestEffectsRunInDefinitionOrder(t *testing.T) {
	var order []string
	record := func(name string) func(*bridge.Bridge[inst], bridge.Props, bridge.Props, *bridge.Options[inst]) error {
		return func(*bridge.Bridge[inst], bridge.Props, bridge.Props, *bridge.Options[inst]) error {
			order = append(order, name)
			return nil
		}
	}
	newBridge(t, bridgetest.NewInstance(), &bridge.Definition[inst]{
		Effects: []bridge.Effect[inst]{
			{PropNames: []string{"x"}, Callback: record("first")},
			{PropNames: []string{"x"}, Callback: record("second")},
			{PropNames: []string{"x"}, Callback: record("third")},
		},
	}, bridge.Props{"x": true})

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for k := range want {
		if order[k] != want[k] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestMirrorEffect(t *testing.T) {
	i := bridgetest.NewInstance()
	b := newBridge(t, i, &bridge.Definition[inst]{
		Accessors: []bridge.Accessor[inst]{bridge.Attr[inst]("value")},
		Effects:   []bridge.Effect[inst]{bridge.Mirror[inst]("value")},
	}, bridge.Props{"value": "a"})

	if i.Attrs["value"] != "a" || i.Sets["value"] != 1 {
		t.Fatalf("after construction value=%v writes=%d", i.Attrs["value"], i.Sets["value"])
	}

	// The user edits the instance directly; reading it back and feeding the
	// result in as a prop must not write it again.
	i.Attrs["value"] = "typed"
	v, err := b.Get("value")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Update(bridge.Props{"value": v}); err != nil {
		t.Fatal(err)
	}
	if i.Sets["value"] != 1 {
		t.Errorf("feedback write happened: writes = %d, want 1", i.Sets["value"])
	}

	if err := b.Update(bridge.Props{"value": "b"}); err != nil {
		t.Fatal(err)
	}
	if i.Attrs["value"] != "b" || i.Sets["value"] != 2 {
		t.Errorf("value=%v writes=%d, want b/2", i.Attrs["value"], i.Sets["value"])
	}
}

func TestEffectErrorPropagatesAndKeepsSnapshot(t *testing.T) {
	errBoom := errors.New("boom")
	i := bridgetest.NewInstance()
	b := newBridge(t, i, &bridge.Definition[inst]{
		Effects: []bridge.Effect[inst]{{
			PropNames: []string{"x"},
			Callback: func(_ *bridge.Bridge[inst], props, _ bridge.Props, _ *bridge.Options[inst]) error {
				if props["x"] == 2 {
					return errBoom
				}
				return nil
			},
		}},
	}, bridge.Props{"x": 1})

	if err := b.Update(bridge.Props{"x": 2}); err != errBoom {
		t.Fatalf("Update err = %v, want errBoom unmodified", err)
	}
	if got := b.Props()["x"]; got != 1 {
		t.Errorf("props x = %v, want previous snapshot 1", got)
	}
}

func TestEffectErrorDuringConstruction(t *testing.T) {
	errBoom := errors.New("boom")
	_, err := bridge.New(bridgetest.NewInstance(), &bridge.Definition[inst]{
		Effects: []bridge.Effect[inst]{{
			PropNames: []string{"x"},
			Callback: func(*bridge.Bridge[inst], bridge.Props, bridge.Props, *bridge.Options[inst]) error {
				return errBoom
			},
		}},
	}, bridge.Props{"x": 1})
	if err != errBoom {
		t.Errorf("New err = %v, want errBoom", err)
	}
}

func TestEffectPanicPropagates(t *testing.T) {
	i := bridgetest.NewInstance()
	b := newBridge(t, i, &bridge.Definition[inst]{
		Effects: []bridge.Effect[inst]{{
			PropNames: []string{"x"},
			Callback: func(_ *bridge.Bridge[inst], props, _ bridge.Props, _ *bridge.Options[inst]) error {
				if props["x"] == "panic" {
					panic("effect panic")
				}
				return nil
			},
		}},
	}, nil)

	defer func() {
		if r := recover(); r != "effect panic" {
			t.Errorf("recovered %v, want effect panic", r)
		}
	}()
	b.Update(bridge.Props{"x": "panic"})
	t.Error("Update should have panicked")
}

func TestEffectSeesUpdateValues(t *testing.T) {
	var seen any
	b := newBridge(t, bridgetest.NewInstance(), &bridge.Definition[inst]{
		Effects: []bridge.Effect[inst]{{
			PropNames: []string{"x"},
			Callback: func(_ *bridge.Bridge[inst], _, _ bridge.Props, o *bridge.Options[inst]) error {
				seen = o.Value("reason")
				return nil
			},
		}},
	}, nil, bridge.WithValues(bridge.Values{"reason": "mount"}))

	if err := b.Update(bridge.Props{"x": 1}, bridge.Values{"reason": "render"}); err != nil {
		t.Fatal(err)
	}
	if seen != "render" {
		t.Errorf("reason = %v, want render", seen)
	}
}
