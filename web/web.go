// Package web bundles the HTML templates into the binary.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
