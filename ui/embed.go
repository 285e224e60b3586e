// Package ui embeds the page templates and the static assets served by the web server.
package ui

import "embed"

//go:embed templates static
var Files embed.FS
