// Package render converts vdom trees into HTML.
//
// The renderer escapes text and attribute values, handles void and boolean
// attributes, and gives every interactive element a data-hid attribute. The
// handlers found on those elements are collected into a registry keyed by
// "<hid>_<event>" so a WebSocket session can route client events back to
// server-side functions:
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//	h := r.Handler("h1", "pointerenter")
//
// HIDs are assigned in document order and restart at h1 for every render,
// so two renders of the same tree shape produce the same IDs.
package render
