// Package vdom provides the virtual DOM used to describe tooltip markup.
//
// A VNode tree is built on the server with variadic element constructors,
// rendered to HTML by package render, and re-rendered whenever a component
// changes state.
//
// # Element API
//
// Elements accept any mix of attributes, event handlers, child nodes,
// components and strings:
//
//	Span(Class("tooltip-wrapper"),
//	    OnPointerEnter(tip.OnPointerEnter),
//	    Button(Text("Save")),
//	)
//
// Nil arguments are ignored so optional parts can be written inline:
//
//	var label *VNode
//	if visible {
//	    label = Div(Class("tooltip"), Text(content))
//	}
//	Span(children, label)
//
// # Event handlers
//
// Handlers are stored in Props under their "on"-prefixed DOM name
// ("onpointerenter", "onfocusout"). Elements that carry handlers are
// interactive and receive a hydration ID when rendered.
package vdom
