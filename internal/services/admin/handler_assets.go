package admin

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goalinstitute/admin-console/internal/platform/assets/imagecdn"
	apperrors "github.com/goalinstitute/admin-console/internal/platform/errors"
	"github.com/goalinstitute/admin-console/internal/platform/httpx"
	"github.com/goalinstitute/admin-console/internal/services/admin/routepath"
	"github.com/goalinstitute/admin-console/internal/services/admin/templates"
)

const (
	// maxUploadBodyBytes leaves room for multipart framing around the file.
	maxUploadBodyBytes = maxAssetBytes + 64<<10
	// uploadMemoryBytes is held in memory before multipart spills to disk.
	uploadMemoryBytes = 1 << 20
	// previewWidthPX is the width of the thumbnail shown after an upload.
	previewWidthPX = 480
)

// uploadResponse is the JSON reply for non-htmx upload clients.
type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) handleAssetsPage(w http.ResponseWriter, r *http.Request) {
	page := h.pageContext(w, r)
	view := templates.AssetsView{Enabled: h.uploader != nil}
	for _, kind := range assetKinds {
		view.Slots = append(view.Slots, templates.AssetSlot{
			Kind:      kind.slug,
			Label:     templates.T(page.Loc, kind.labelKey),
			Hint:      templates.T(page.Loc, kind.hintKey),
			Accept:    strings.Join(kind.constraints.AllowedTypes, ","),
			UploadURL: routepath.AssetUpload(kind.slug),
		})
	}
	title := templates.T(page.Loc, "assets.title")
	templates.Render(w, r, templates.AssetsPage(page, view), templates.PageTitle(page.Loc, title), http.StatusOK)
}

// handleAssetUpload validates one image and stores it on the CDN. htmx
// callers always get 200 with a result fragment so the outcome is swapped in
// place; other callers get JSON with the error's status.
func (h *Handler) handleAssetUpload(w http.ResponseWriter, r *http.Request) {
	page := h.fragmentContext(w, r)
	result, status := h.uploadAsset(w, r, page)
	if httpx.IsHTMXRequest(r) {
		templates.RenderFragment(w, r, templates.UploadResultFragment(page, result), http.StatusOK)
		return
	}
	if err := httpx.WriteJSON(w, status, uploadResponse{Success: result.Success, URL: result.URL, Message: result.Message}); err != nil {
		h.logf(r, "write upload response: %v", err)
	}
}

func (h *Handler) uploadAsset(w http.ResponseWriter, r *http.Request, page templates.PageContext) (templates.UploadResult, int) {
	fail := func(err error) (templates.UploadResult, int) {
		return templates.UploadResult{Message: apperrors.LocalizedMessage(err, page.Lang)}, apperrors.CodeOf(err).HTTPStatus()
	}
	if h.uploader == nil {
		return templates.UploadResult{Message: templates.T(page.Loc, "assets.unavailable")}, http.StatusServiceUnavailable
	}
	kind, ok := lookupAssetKind(r.URL.Query().Get("kind"))
	if !ok {
		return fail(apperrors.New(apperrors.CodeInvalidArgument, "unknown asset kind"))
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodyBytes)
	if err := r.ParseMultipartForm(uploadMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fail(apperrors.WithMetadata(apperrors.CodeUploadTooLarge, "upload body too large",
				map[string]string{"MaxBytes": strconv.Itoa(maxAssetBytes)}))
		}
		return fail(apperrors.Wrap(apperrors.CodeInvalidArgument, "parse upload form", err))
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()
	file, header, err := r.FormFile("file")
	if err != nil {
		return fail(apperrors.Wrap(apperrors.CodeInvalidArgument, "upload file missing", err))
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxAssetBytes+1))
	if err != nil {
		return fail(apperrors.Wrap(apperrors.CodeInvalidArgument, "read upload", err))
	}

	asset, err := h.uploader.Upload(r.Context(), header.Filename, data, kind.constraints)
	if err != nil {
		h.logf(r, "upload %s: %v", kind.slug, err)
		return fail(err)
	}
	result := templates.UploadResult{Success: true, URL: asset.SecureURL}
	if h.previewCDN != nil && asset.PublicID != "" {
		preview, err := h.previewCDN.URL(imagecdn.Request{
			AssetID:   asset.PublicID,
			Extension: asset.Format,
			Delivery:  &imagecdn.Delivery{WidthPX: previewWidthPX},
		})
		if err == nil {
			result.PreviewURL = preview
		}
	}
	return result, http.StatusOK
}
