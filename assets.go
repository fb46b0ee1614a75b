package main

import (
	"embed"

	"github.com/otiai10/copy"
)

const (
	templatesDir = "assets/templates"
	staticDir    = "assets/static"
)

// Templates and the static files copied into every site.
//
//go:embed assets/templates/*.html assets/static
var assets embed.FS

// copyStaticFiles copies the bundled static files into the root of outDir.
// Embedded files are read-only, so write permission is added to let the next
// run overwrite them.
func copyStaticFiles(outDir string) error {
	return copy.Copy(staticDir, outDir, copy.Options{
		FS:                assets,
		PermissionControl: copy.AddPermission(0o200),
	})
}
