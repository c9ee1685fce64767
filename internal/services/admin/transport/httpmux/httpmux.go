package httpmux

import (
	"io/fs"
	"net/http"

	"github.com/goalinstitute/admin-console/internal/services/admin/routepath"
)

// MountStatic serves staticFS under the static prefix, outside the session
// guard.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, wrap func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	if wrap != nil {
		staticHandler = wrap(staticHandler)
	}
	rootMux.Handle(routepath.StaticPrefix, staticHandler)
}

// MountAdminRoutes mounts the guarded console under the root path.
func MountAdminRoutes(rootMux *http.ServeMux, admin http.Handler) {
	if rootMux == nil || admin == nil {
		return
	}
	rootMux.Handle(routepath.Root, admin)
}
