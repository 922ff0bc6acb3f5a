// Package tooltip implements a hover and focus triggered tooltip component.
//
// A Tooltip wraps trigger content and reveals a label next to it once the
// pointer or keyboard focus has rested on the trigger for a configurable
// delay (300ms by default). Leaving or blurring hides the label at once and
// cancels any reveal still waiting on its timer.
//
//	tip := tooltip.New("Save",
//	    tooltip.WithPosition(tooltip.PositionBottom),
//	    tooltip.WithChildren(vdom.Button(vdom.Text("💾"))),
//	)
//	defer tip.Unmount()
//
// # State machine
//
//	Hidden      --show-->  PendingShow   (timer started)
//	PendingShow --timer--> Visible
//	PendingShow --show-->  PendingShow   (timer replaced)
//	PendingShow --hide-->  Hidden        (timer cancelled)
//	Visible     --hide-->  Hidden
//
// Unmount cancels the pending timer and turns every later trigger and any
// late timer callback into a no-op.
//
// # Event loop
//
// Timer callbacks fire on the clock's goroutine and are handed to the
// configured loop.Dispatcher so that they serialize with client events.
// Tests usually pair a clock.Fake with loop.Inline to get fully
// deterministic behavior.
//
// # Styling
//
// Stylesheet returns the CSS for the wrapper, the label, the four anchor
// classes and the fade-in animation. Colors, radius, offset and shadow are
// read from --tooltip-* custom properties.
package tooltip
