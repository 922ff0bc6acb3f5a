package vdom

import "testing"

func TestCreateElement_MixedArgs(t *testing.T) {
	called := false
	var missing *VNode

	node := Span(
		Class("a"),
		nil,
		missing,
		ID("x"),
		OnPointerEnter(func() { called = true }),
		"hello",
		B("child"),
		[]*VNode{Text("one"), nil, Text("two")},
	)

	if node.Tag != "span" || node.Kind != KindElement {
		t.Fatalf("unexpected node: %+v", node)
	}
	if node.Props["id"] != "x" {
		t.Errorf("id = %v, want x", node.Props["id"])
	}
	if got := len(node.Children); got != 4 {
		t.Fatalf("children = %d, want 4", got)
	}
	if node.TextContent() != "hellochildonetwo" {
		t.Errorf("TextContent = %q", node.TextContent())
	}
	if !node.IsInteractive() {
		t.Fatal("expected node with handler to be interactive")
	}
	if !Invoke(node.Props["onpointerenter"], Event{Type: "pointerenter"}) || !called {
		t.Error("expected handler to be invoked")
	}
}

// B is a local helper so the test exercises the Element constructor.
func B(text string) *VNode { return Element("b", Text(text)) }

func TestClass_Accumulates(t *testing.T) {
	node := Div(Class("tooltip"), Class("tooltip-top", ""))
	if got := node.Props["class"]; got != "tooltip tooltip-top" {
		t.Errorf("class = %q", got)
	}
	if !node.HasClass("tooltip-top") || node.HasClass("tooltip-bottom") {
		t.Error("HasClass mismatch")
	}
}

func TestKey_NotStoredAsProp(t *testing.T) {
	node := Div(Key("k1"))
	if node.Key != "k1" {
		t.Errorf("Key = %q", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key should not be a prop")
	}
}

func TestHandlers_Sorted(t *testing.T) {
	node := Span(OnPointerLeave(func() {}), OnFocusOut(func() {}), OnFocusIn(func() {}))
	hs := node.Handlers()
	want := []string{"onfocusin", "onfocusout", "onpointerleave"}
	if len(hs) != len(want) {
		t.Fatalf("handlers = %d, want %d", len(hs), len(want))
	}
	for i, h := range hs {
		if h.Event != want[i] {
			t.Errorf("handler[%d] = %s, want %s", i, h.Event, want[i])
		}
	}
}

func TestFind_DescendsIntoComponents(t *testing.T) {
	inner := Func(func() *VNode { return Div(Class("target"), Text("found")) })
	root := Div(Span(inner))

	got := root.Find(func(n *VNode) bool { return n.HasClass("target") })
	if got == nil || got.TextContent() != "found" {
		t.Fatalf("Find = %+v", got)
	}
	if root.Find(func(n *VNode) bool { return n.Tag == "table" }) != nil {
		t.Error("expected no match")
	}
}

func TestInvoke_UnsupportedSignature(t *testing.T) {
	if Invoke(func(int) {}, Event{}) {
		t.Error("expected unsupported handler signature to be rejected")
	}
	var gotType string
	Invoke(func(e Event) { gotType = e.Type }, Event{Type: "blur"})
	if gotType != "blur" {
		t.Errorf("event type = %q", gotType)
	}
}

func TestVKindString(t *testing.T) {
	tests := map[VKind]string{
		KindElement:   "Element",
		KindText:      "Text",
		KindFragment:  "Fragment",
		KindComponent: "Component",
		KindRaw:       "Raw",
		VKind(99):     "Unknown",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}

func TestFragment_SkipsNil(t *testing.T) {
	f := Fragment(Text("a"), nil, Text("b"))
	if len(f.Children) != 2 {
		t.Errorf("children = %d, want 2", len(f.Children))
	}
}
