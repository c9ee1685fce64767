package static

import "embed"

// FS exposes admin console static assets for HTTP serving.
//
//go:embed *.css
var FS embed.FS
