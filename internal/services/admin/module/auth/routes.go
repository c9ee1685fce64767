// Package auth registers the sign-in and sign-out routes.
package auth

import (
	"net/http"

	routepath "github.com/goalinstitute/admin-console/internal/services/admin/routepath"
)

// Service defines auth route handlers consumed by this route module.
type Service interface {
	HandleLoginPage(w http.ResponseWriter, r *http.Request)
	HandleLoginSubmit(w http.ResponseWriter, r *http.Request)
	HandleLogout(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires auth routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Login, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			service.HandleLoginPage(w, r)
		case http.MethodPost:
			service.HandleLoginSubmit(w, r)
		default:
			methodNotAllowed(w, "GET, HEAD, POST")
		}
	})
	mux.HandleFunc(routepath.Logout, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		service.HandleLogout(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
