// Package web holds the HTML templates compiled into the binary.
package web

import "embed"

// EmbeddedFS contains templates/ and is used outside debug mode.
//
//go:embed templates
var EmbeddedFS embed.FS
