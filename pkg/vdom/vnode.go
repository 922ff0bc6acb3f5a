package vdom

import (
	"sort"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <span>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (trusted input only)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "span")
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
	HID      string    // Hydration ID (assigned during render)
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive reports whether the node carries event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key, value := range v.Props {
		if IsEventKey(key) && value != nil {
			return true
		}
	}
	return false
}

// Handlers returns the node's event handlers keyed by their "on" name,
// in sorted key order.
func (v *VNode) Handlers() []EventHandler {
	if v == nil {
		return nil
	}
	var out []EventHandler
	for key, value := range v.Props {
		if IsEventKey(key) && value != nil {
			out = append(out, EventHandler{Event: key, Handler: value})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Event < out[j].Event })
	return out
}

// HasClass reports whether the node's class attribute contains name.
func (v *VNode) HasClass(name string) bool {
	if v == nil {
		return false
	}
	classes, _ := v.Props["class"].(string)
	for _, c := range strings.Fields(classes) {
		if c == name {
			return true
		}
	}
	return false
}

// TextContent concatenates all text below the node.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	var sb strings.Builder
	v.walkText(&sb)
	return sb.String()
}

func (v *VNode) walkText(sb *strings.Builder) {
	switch v.Kind {
	case KindText:
		sb.WriteString(v.Text)
	case KindComponent:
		if v.Comp != nil {
			if out := v.Comp.Render(); out != nil {
				out.walkText(sb)
			}
		}
	default:
		for _, c := range v.Children {
			if c != nil {
				c.walkText(sb)
			}
		}
	}
}

// Find returns the first node in depth-first order for which match is true.
// Component nodes are rendered and searched.
func (v *VNode) Find(match func(*VNode) bool) *VNode {
	if v == nil {
		return nil
	}
	if match(v) {
		return v
	}
	if v.Kind == KindComponent && v.Comp != nil {
		return v.Comp.Render().Find(match)
	}
	for _, c := range v.Children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// IsEventKey reports whether a prop key names an event handler.
func IsEventKey(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onpointerenter", "onfocusout", etc.
	Handler any    // func() or func(Event)
}

// Event is the payload delivered to handlers of type func(Event).
type Event struct {
	Type string // DOM event type without the "on" prefix
	HID  string // Hydration ID of the target element
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
