// Package ui bundles the page templates and static assets into the binary.
package ui

import "embed"

//go:embed templates static
var Files embed.FS
