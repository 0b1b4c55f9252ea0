// Package web embeds the static assets for the packet browser.
package web

import "embed"

//go:embed static
var StaticFiles embed.FS
