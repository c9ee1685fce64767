package dashboard

import (
	"net/http"

	routepath "github.com/goalinstitute/admin-console/internal/services/admin/routepath"
)

// Service defines dashboard route handlers consumed by this route module.
type Service interface {
	HandleDashboard(w http.ResponseWriter, r *http.Request)
	HandleNotFound(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires dashboard routes into the provided mux. The root
// pattern also catches unknown paths, which get the not-found page.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routepath.Root {
			service.HandleNotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		service.HandleDashboard(w, r)
	})
}
