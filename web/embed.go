// Package web embeds the static assets served by the application shell.
package web

import "embed"

// Static holds the embedded shell document and assets.
//
//go:embed static
var Static embed.FS
