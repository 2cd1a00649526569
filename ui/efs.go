package ui

import "embed"

// Files holds the templates, static assets, icons and build config.
//
//go:embed "build.yaml" "html" "static" "icons"
var Files embed.FS
