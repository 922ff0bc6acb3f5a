package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not readable",
		Detail:   "The tooltip.json file could not be read.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "tooltip.json is not valid JSON or has fields of the wrong type.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server port must be between 0 and 65535.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid tooltip position",
		Detail:   "Position must be one of top, bottom, left or right.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid tooltip delay",
		Detail:   "The delay must be zero or a positive duration such as \"300ms\".",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid server timeout",
		Detail:   "Server timeouts must be positive durations.",
	},

	// ============================================
	// Protocol Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryProtocol,
		Message:  "Malformed message",
		Detail:   "The WebSocket message could not be decoded.",
	},
	"E201": {
		Category: CategoryProtocol,
		Message:  "Handler not found",
		Detail:   "No handler is registered for this element and event. The page may be stale.",
	},
	"E202": {
		Category: CategoryProtocol,
		Message:  "Unsupported message type",
		Detail:   "The server does not understand this message type.",
	},
	"E203": {
		Category: CategoryProtocol,
		Message:  "Session overloaded",
		Detail:   "The session event queue is full.",
	},

	// ============================================
	// Publish Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryPublish,
		Message:  "Missing bucket",
		Detail:   "A bucket name is required to publish the stylesheet.",
	},
	"E301": {
		Category: CategoryPublish,
		Message:  "Upload failed",
		Detail:   "The stylesheet could not be uploaded.",
	},

	// ============================================
	// CLI Errors (E400-E499)
	// ============================================

	"E400": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
	},
	"E401": {
		Category: CategoryCLI,
		Message:  "Render failed",
		Detail:   "The tooltip could not be rendered.",
	},
	"E402": {
		Category: CategoryCLI,
		Message:  "Invalid flag",
		Detail:   "A command-line flag has an unsupported value.",
	},
	"E403": {
		Category: CategoryCLI,
		Message:  "File exists",
		Detail:   "Refusing to overwrite an existing file.",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for c := range registry {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
