// Package server serves tooltips over HTTP and WebSocket.
//
// The initial page is rendered on the server. A small client script relays
// pointer and focus events over a WebSocket; each session owns a loop.Loop
// on which handlers, tooltip timers and re-renders run. After every loop
// turn that changed the markup, the session pushes the new HTML of the app
// root to the browser.
//
// Routes:
//
//	GET /            demo page, one tooltip per position
//	GET /tooltip.css tooltip stylesheet
//	GET /client.js   event relay script
//	GET /ws          WebSocket endpoint
//	GET /metrics     Prometheus metrics (when a registry is configured)
//	GET /healthz     liveness probe
//
// Protocol (JSON text frames):
//
//	client → server  {"t":"event","hid":"h3","e":"pointerenter"}
//	server → client  {"t":"html","html":"..."}
//	server → client  {"t":"error","code":"E201","message":"..."}
package server
