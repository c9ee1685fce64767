// Package imagecdn resolves delivery URLs for uploaded image assets.
package imagecdn

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// ErrAssetIDRequired indicates a request without an asset identifier.
var ErrAssetIDRequired = errors.New("asset id is required")

// Crop selects a source region in pixels.
type Crop struct {
	X        int
	Y        int
	WidthPX  int
	HeightPX int
}

// Delivery bounds the rendered width of the delivered image.
type Delivery struct {
	WidthPX int
}

// Request identifies one asset and optional transforms.
type Request struct {
	AssetID   string
	Extension string
	Crop      *Crop
	Delivery  *Delivery
}

// CDN builds asset URLs under a base URL. Cloudinary bases get transform
// segments; any other base serves the asset as-is.
type CDN struct {
	base       string
	transforms bool
}

// New returns a CDN rooted at baseURL.
func New(baseURL string) CDN {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	transforms := false
	if parsed, err := url.Parse(base); err == nil {
		transforms = strings.EqualFold(parsed.Hostname(), "res.cloudinary.com")
	}
	return CDN{base: base, transforms: transforms}
}

// ForCloud returns the Cloudinary delivery CDN for an account.
func ForCloud(cloudName string) CDN {
	return New("https://res.cloudinary.com/" + url.PathEscape(strings.TrimSpace(cloudName)) + "/image/upload")
}

// URL resolves the delivery URL for req.
func (c CDN) URL(req Request) (string, error) {
	assetID := strings.Trim(strings.TrimSpace(req.AssetID), "/")
	if assetID == "" {
		return "", ErrAssetIDRequired
	}
	ext := strings.TrimSpace(req.Extension)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	segments := []string{c.base}
	if c.transforms {
		if crop := req.Crop; crop != nil && crop.WidthPX > 0 && crop.HeightPX > 0 {
			segments = append(segments, "c_crop,w_"+strconv.Itoa(crop.WidthPX)+
				",h_"+strconv.Itoa(crop.HeightPX)+
				",x_"+strconv.Itoa(crop.X)+
				",y_"+strconv.Itoa(crop.Y))
		}
		if delivery := req.Delivery; delivery != nil && delivery.WidthPX > 0 {
			segments = append(segments, "f_auto,q_auto,dpr_auto,c_limit,w_"+strconv.Itoa(delivery.WidthPX))
		}
	}
	segments = append(segments, assetID+ext)
	return strings.Join(segments, "/"), nil
}
