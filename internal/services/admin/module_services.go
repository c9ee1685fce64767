package admin

import "net/http"

// HandleDashboard serves the dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.handleDashboard(w, r)
}

// HandleNotFound serves the not-found page inside the layout.
func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.handleNotFound(w, r)
}

// HandleLoginPage serves the sign-in form.
func (h *Handler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.handleLoginPage(w, r)
}

// HandleLoginSubmit signs the visitor in.
func (h *Handler) HandleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	h.handleLoginSubmit(w, r)
}

// HandleLogout signs the visitor out.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.handleLogout(w, r)
}

// HandleSubmissionsPage serves a submissions list.
func (h *Handler) HandleSubmissionsPage(w http.ResponseWriter, r *http.Request, kind string) {
	h.handleSubmissionsPage(w, r, kind)
}

// HandleSubmissionsTable serves the submissions table fragment.
func (h *Handler) HandleSubmissionsTable(w http.ResponseWriter, r *http.Request, kind string) {
	h.handleSubmissionsTable(w, r, kind)
}

// HandleSubmissionsExport downloads submissions as CSV.
func (h *Handler) HandleSubmissionsExport(w http.ResponseWriter, r *http.Request, kind string) {
	h.handleSubmissionsExport(w, r, kind)
}

// HandleSubmissionDetail serves one submission.
func (h *Handler) HandleSubmissionDetail(w http.ResponseWriter, r *http.Request, kind, id string) {
	h.handleSubmissionDetail(w, r, kind, id)
}

// HandleSubmissionDelete deletes one submission.
func (h *Handler) HandleSubmissionDelete(w http.ResponseWriter, r *http.Request, kind, id string) {
	h.handleSubmissionDelete(w, r, kind, id)
}

// HandleAssetsPage serves the asset upload page.
func (h *Handler) HandleAssetsPage(w http.ResponseWriter, r *http.Request) {
	h.handleAssetsPage(w, r)
}

// HandleAssetUpload uploads one asset.
func (h *Handler) HandleAssetUpload(w http.ResponseWriter, r *http.Request) {
	h.handleAssetUpload(w, r)
}
