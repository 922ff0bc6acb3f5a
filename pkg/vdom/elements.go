package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, *VNode, []*VNode,
// Component, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case EventHandler:
			if v.Event != "" && v.Handler != nil {
				node.Props[v.Event] = v.Handler
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case Component:
			if v != nil {
				node.Children = append(node.Children, &VNode{Kind: KindComponent, Comp: v})
			}

		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	}
	// Repeated class attributes accumulate.
	if a.Key == "class" {
		if prev, ok := v.Props["class"].(string); ok && prev != "" {
			if next, ok := a.Value.(string); ok && next != "" {
				v.Props["class"] = prev + " " + next
				return
			}
		}
	}
	v.Props[a.Key] = a.Value
}

// Text creates a text node. Content is escaped when rendered.
func Text(s string) *VNode {
	return &VNode{Kind: KindText, Text: s}
}

// Raw creates a node whose content is written without escaping.
// Only use with trusted markup.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...*VNode) *VNode {
	out := &VNode{Kind: KindFragment, Children: make([]*VNode, 0, len(children))}
	for _, c := range children {
		if c != nil {
			out.Children = append(out.Children, c)
		}
	}
	return out
}

// Element creates an element with an arbitrary tag.
func Element(tag string, args ...any) *VNode { return createElement(tag, args) }

// Document structure

func Html(args ...any) *VNode  { return createElement("html", args) }
func Head(args ...any) *VNode  { return createElement("head", args) }
func Body(args ...any) *VNode  { return createElement("body", args) }
func Title(args ...any) *VNode { return createElement("title", args) }
func Meta(args ...any) *VNode  { return createElement("meta", args) }
func Link(args ...any) *VNode  { return createElement("link", args) }

// Script creates a script element.
func Script(args ...any) *VNode { return createElement("script", args) }

// Sectioning and text

func Main(args ...any) *VNode    { return createElement("main", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Div(args ...any) *VNode     { return createElement("div", args) }
func Span(args ...any) *VNode    { return createElement("span", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func P(args ...any) *VNode       { return createElement("p", args) }

// Button creates a button element.
func Button(args ...any) *VNode { return createElement("button", args) }
