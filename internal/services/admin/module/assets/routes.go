// Package assets registers the site asset upload routes.
package assets

import (
	"net/http"

	routepath "github.com/goalinstitute/admin-console/internal/services/admin/routepath"
)

// Service defines asset handlers consumed by this route module.
type Service interface {
	HandleAssetsPage(w http.ResponseWriter, r *http.Request)
	HandleAssetUpload(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires asset routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Assets, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			methodNotAllowed(w, "GET, HEAD")
			return
		}
		service.HandleAssetsPage(w, r)
	})
	mux.HandleFunc(routepath.AssetsUpload, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		service.HandleAssetUpload(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
