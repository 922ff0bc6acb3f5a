package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "focusin" becomes "onfocusin").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnPointerEnter handles pointerenter events.
func OnPointerEnter(handler any) EventHandler { return event("pointerenter", handler) }

// OnPointerLeave handles pointerleave events.
func OnPointerLeave(handler any) EventHandler { return event("pointerleave", handler) }

// OnFocusIn handles focusin events (bubbles, unlike focus).
func OnFocusIn(handler any) EventHandler { return event("focusin", handler) }

// OnFocusOut handles focusout events (bubbles, unlike blur).
func OnFocusOut(handler any) EventHandler { return event("focusout", handler) }

// Invoke calls handler with ev. It accepts func() and func(Event) and
// reports whether the handler had a supported signature.
func Invoke(handler any, ev Event) bool {
	switch h := handler.(type) {
	case func():
		h()
	case func(Event):
		h(ev)
	default:
		return false
	}
	return true
}
