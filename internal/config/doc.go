// Package config loads tooltip.json, the configuration for the tooltip
// server and CLI.
//
//	{
//	  "server":  { "host": "localhost", "port": 3000 },
//	  "tooltip": { "delay": "300ms", "position": "top" },
//	  "publish": { "bucket": "assets", "key": "css/tooltip.css" }
//	}
//
// Missing fields take their defaults. Durations are Go duration strings.
// Command-line flags override file values.
package config
