// Package forms registers the form submission routes:
//
//	/forms/{kind}                list page
//	/forms/{kind}/table          table fragment for live search and paging
//	/forms/{kind}/export         CSV download
//	/forms/{kind}/{id}           detail page
//	/forms/{kind}/{id}/delete    delete action (POST)
package forms

import (
	"net/http"

	sharedpath "github.com/goalinstitute/admin-console/internal/services/admin/module/sharedpath"
	routepath "github.com/goalinstitute/admin-console/internal/services/admin/routepath"
)

// Service defines form submission handlers consumed by this route module.
type Service interface {
	HandleSubmissionsPage(w http.ResponseWriter, r *http.Request, kind string)
	HandleSubmissionsTable(w http.ResponseWriter, r *http.Request, kind string)
	HandleSubmissionsExport(w http.ResponseWriter, r *http.Request, kind string)
	HandleSubmissionDetail(w http.ResponseWriter, r *http.Request, kind, id string)
	HandleSubmissionDelete(w http.ResponseWriter, r *http.Request, kind, id string)
}

// RegisterRoutes wires form routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	// Exact match keeps ServeMux from redirecting /forms to the subtree.
	mux.Handle(routepath.Forms, http.NotFoundHandler())
	mux.HandleFunc(routepath.FormsPrefix, func(w http.ResponseWriter, r *http.Request) {
		HandleFormPath(w, r, service)
	})
}

// HandleFormPath parses form subroutes and dispatches to service handlers.
func HandleFormPath(w http.ResponseWriter, r *http.Request, service Service) {
	if service == nil {
		http.NotFound(w, r)
		return
	}
	parts, ok := sharedpath.Segments(r, routepath.FormsPrefix)
	if !ok || len(parts) == 0 {
		http.NotFound(w, r)
		return
	}
	if sharedpath.RedirectTrailingSlash(w, r) {
		return
	}
	kind := parts[0]

	switch {
	case len(parts) == 1:
		if !readOnly(w, r) {
			return
		}
		service.HandleSubmissionsPage(w, r, kind)
	case len(parts) == 2 && parts[1] == "table":
		if !readOnly(w, r) {
			return
		}
		service.HandleSubmissionsTable(w, r, kind)
	case len(parts) == 2 && parts[1] == "export":
		if !readOnly(w, r) {
			return
		}
		service.HandleSubmissionsExport(w, r, kind)
	case len(parts) == 2:
		if !readOnly(w, r) {
			return
		}
		service.HandleSubmissionDetail(w, r, kind, parts[1])
	case len(parts) == 3 && parts[2] == "delete":
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		service.HandleSubmissionDelete(w, r, kind, parts[1])
	default:
		http.NotFound(w, r)
	}
}

func readOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}
