package element

import (
	"testing"

	"github.com/go-drift/bridge/pkg/bridge"
)

func TestAttributes(t *testing.T) {
	e := New("input")
	e.SetAttribute("value", "a")
	if v, ok := e.Attribute("value"); !ok || v != "a" {
		t.Errorf("Attribute(value) = %v, %v", v, ok)
	}
	e.SetAttribute("value", nil)
	if _, ok := e.Attribute("value"); ok {
		t.Error("setting nil should remove the attribute")
	}
	e.SetAttribute("x", 1)
	attrs := e.Attributes()
	attrs["x"] = 2
	if v, _ := e.Attribute("x"); v != 1 {
		t.Error("Attributes() leaked internal storage")
	}
}

func TestListeners(t *testing.T) {
	e := New("button")
	calls := 0
	l := bridge.NewListener("click", func(...any) { calls++ })

	e.AddListener("click", l)
	e.AddListener("click", l)
	if n := e.ListenerCount("click"); n != 1 {
		t.Fatalf("ListenerCount = %d, want 1", n)
	}
	if n := e.Dispatch("click"); n != 1 || calls != 1 {
		t.Fatalf("Dispatch = %d calls=%d, want 1/1", n, calls)
	}
	e.RemoveListener("click", l)
	if n := e.Dispatch("click"); n != 0 {
		t.Errorf("Dispatch after remove = %d, want 0", n)
	}
	e.RemoveListener("click", l)
}

func TestListenerRemovedDuringDispatch(t *testing.T) {
	e := New("button")
	var second *bridge.Listener
	calls := 0
	first := bridge.NewListener("click", func(...any) {
		e.RemoveListener("click", second)
	})
	second = bridge.NewListener("click", func(...any) { calls++ })
	e.AddListener("click", first)
	e.AddListener("click", second)

	e.Dispatch("click")
	if calls != 1 {
		t.Errorf("second listener calls = %d, want 1 in the dispatch that removed it", calls)
	}
	e.Dispatch("click")
	if calls != 1 {
		t.Errorf("removed listener still called")
	}
}

func TestTree(t *testing.T) {
	root := New("div")
	other := New("div")
	child := New("span")

	root.AppendChild(child)
	if child.Parent() != root || len(root.Children()) != 1 {
		t.Fatal("child not attached to root")
	}
	other.AppendChild(child)
	if child.Parent() != other || len(root.Children()) != 0 {
		t.Fatal("AppendChild should move the child")
	}
	child.Remove()
	if child.Parent() != nil || len(other.Children()) != 0 {
		t.Error("Remove did not detach the child")
	}
	child.Remove()
	root.AppendChild(root)
	if len(root.Children()) != 0 {
		t.Error("element appended to itself")
	}
}

func TestElementThroughBridge(t *testing.T) {
	e := New("input")
	parent := New("form")
	parent.AppendChild(e)

	var got []any
	b, err := bridge.New(e, &bridge.Definition[*Element]{
		Accessors: []bridge.Accessor[*Element]{bridge.Attr[*Element]("value")},
		Effects:   []bridge.Effect[*Element]{bridge.Mirror[*Element]("value")},
		Events:    []bridge.Event[*Element]{bridge.On[*Element]("input")},
	}, bridge.Props{"value": "hi", "onInput": func(v any) { got = append(got, v) }})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := e.Attribute("value"); v != "hi" {
		t.Errorf("value = %v, want hi", v)
	}
	e.Dispatch("input", "hi!")
	if len(got) != 1 || got[0] != "hi!" {
		t.Errorf("got %v, want [hi!]", got)
	}
	if err := b.Destroy(); err != nil {
		t.Fatal(err)
	}
	if e.ListenerCount("input") != 0 {
		t.Error("listener left on element after Destroy")
	}
	if e.Parent() != nil {
		t.Error("element still attached after Destroy")
	}
}
