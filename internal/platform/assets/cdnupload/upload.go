// Package cdnupload validates images and uploads them to the Cloudinary
// unsigned upload API.
package cdnupload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	apperrors "github.com/goalinstitute/admin-console/internal/platform/errors"
	"github.com/goalinstitute/admin-console/internal/platform/timeouts"
)

// maxResponseBytes bounds how much of the CDN response is read.
const maxResponseBytes = 1 << 20

// Config selects the CDN account and upload preset.
type Config struct {
	CloudName    string
	UploadPreset string
	// Endpoint overrides the upload URL; tests point it at httptest servers.
	Endpoint string
	// Folder optionally namespaces uploaded assets.
	Folder string
}

// Asset is the stored reference returned by a successful upload.
type Asset struct {
	SecureURL string
	PublicID  string
	Format    string
	WidthPX   int
	HeightPX  int
	Bytes     int64
}

// uploadResponse mirrors the fields read from the CDN's JSON reply.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Uploader posts validated images to the CDN.
type Uploader struct {
	endpoint string
	preset   string
	folder   string
	client   *http.Client
}

// NewUploader validates cfg and builds an uploader.
func NewUploader(cfg Config, client *http.Client) (*Uploader, error) {
	preset := strings.TrimSpace(cfg.UploadPreset)
	if preset == "" {
		return nil, fmt.Errorf("cdn upload preset is required")
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		cloud := strings.TrimSpace(cfg.CloudName)
		if cloud == "" {
			return nil, fmt.Errorf("cdn cloud name is required")
		}
		endpoint = "https://api.cloudinary.com/v1_1/" + url.PathEscape(cloud) + "/image/upload"
	}
	if client == nil {
		client = &http.Client{Timeout: timeouts.Upload}
	}
	return &Uploader{
		endpoint: endpoint,
		preset:   preset,
		folder:   strings.Trim(strings.TrimSpace(cfg.Folder), "/"),
		client:   client,
	}, nil
}

// Upload validates data against c and, only when it passes, posts it to the
// CDN. Validation failures never reach the network.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte, c Constraints) (Asset, error) {
	if _, err := Validate(data, c); err != nil {
		return Asset{}, err
	}

	body, contentType, err := u.encode(filename, data)
	if err != nil {
		return Asset{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, body)
	if err != nil {
		return Asset{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		return Asset{}, apperrors.Wrap(apperrors.CodeTransport, "upload request", err)
	}
	defer resp.Body.Close()

	var decoded uploadResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return Asset{}, apperrors.Wrap(apperrors.CodeTransport, "decode upload response", err)
	}
	if resp.StatusCode/100 != 2 || decoded.SecureURL == "" {
		message := resp.Status
		if decoded.Error != nil && decoded.Error.Message != "" {
			message = decoded.Error.Message
		}
		return Asset{}, apperrors.WithMetadata(apperrors.CodeUploadRejected, "cdn rejected upload: "+message,
			map[string]string{"Reason": message})
	}
	return Asset{
		SecureURL: decoded.SecureURL,
		PublicID:  decoded.PublicID,
		Format:    decoded.Format,
		WidthPX:   decoded.Width,
		HeightPX:  decoded.Height,
		Bytes:     decoded.Bytes,
	}, nil
}

func (u *Uploader) encode(filename string, data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("upload_preset", u.preset); err != nil {
		return nil, "", fmt.Errorf("write preset field: %w", err)
	}
	if u.folder != "" {
		if err := mw.WriteField("folder", u.folder); err != nil {
			return nil, "", fmt.Errorf("write folder field: %w", err)
		}
	}
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
