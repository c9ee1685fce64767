package cdnupload

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"slices"
	"strconv"

	apperrors "github.com/goalinstitute/admin-console/internal/platform/errors"
	_ "golang.org/x/image/webp"
)

// Content types accepted by default.
const (
	TypeJPEG = "image/jpeg"
	TypePNG  = "image/png"
	TypeWebP = "image/webp"
	TypeGIF  = "image/gif"
)

// Constraints bound what an upload may contain. Zero values disable a check.
type Constraints struct {
	AllowedTypes []string
	MaxBytes     int64
	// WidthPX and HeightPX require exact pixel dimensions when set.
	WidthPX  int
	HeightPX int
}

// ImageInfo describes a validated image.
type ImageInfo struct {
	ContentType string
	WidthPX     int
	HeightPX    int
	Bytes       int64
}

// Validate checks data against c without any network access. The content type
// is sniffed from the bytes; the client-declared type is not trusted.
func Validate(data []byte, c Constraints) (ImageInfo, error) {
	info := ImageInfo{Bytes: int64(len(data))}
	if len(data) == 0 {
		return info, apperrors.New(apperrors.CodeInvalidArgument, "upload is empty")
	}
	if c.MaxBytes > 0 && info.Bytes > c.MaxBytes {
		return info, apperrors.WithMetadata(apperrors.CodeUploadTooLarge,
			fmt.Sprintf("upload is %d bytes, limit is %d", info.Bytes, c.MaxBytes),
			map[string]string{"MaxBytes": strconv.FormatInt(c.MaxBytes, 10)})
	}

	info.ContentType = http.DetectContentType(data)
	allowed := c.AllowedTypes
	if len(allowed) == 0 {
		allowed = []string{TypeJPEG, TypePNG, TypeWebP}
	}
	if !slices.Contains(allowed, info.ContentType) {
		return info, apperrors.WithMetadata(apperrors.CodeUploadInvalidType,
			"content type "+info.ContentType+" is not allowed",
			map[string]string{"ContentType": info.ContentType})
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return info, apperrors.Wrap(apperrors.CodeUploadInvalidType, "decode image header", err)
	}
	info.WidthPX, info.HeightPX = cfg.Width, cfg.Height

	if (c.WidthPX > 0 && cfg.Width != c.WidthPX) || (c.HeightPX > 0 && cfg.Height != c.HeightPX) {
		return info, apperrors.WithMetadata(apperrors.CodeUploadInvalidDimensions,
			fmt.Sprintf("image is %dx%d, want %dx%d", cfg.Width, cfg.Height, c.WidthPX, c.HeightPX),
			map[string]string{
				"WidthPX":  strconv.Itoa(c.WidthPX),
				"HeightPX": strconv.Itoa(c.HeightPX),
			})
	}
	return info, nil
}
