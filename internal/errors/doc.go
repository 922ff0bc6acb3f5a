// Package errors provides coded, user-facing errors for the tooltip CLI,
// its configuration loader and the WebSocket protocol.
//
// Errors are created from a registered code and refined with detail and a
// suggestion:
//
//	return errors.New("E101").
//	    WithDetail("port 70000 is out of range").
//	    WithSuggestion("Use a port between 1 and 65535")
//
// Codes are grouped by category:
//
//	E100-E199  config
//	E200-E299  protocol
//	E300-E399  publish
//	E400-E499  cli
//
// Format renders an error for terminal output. The wrapped cause is kept
// so errors.Is and errors.As keep working.
package errors
