package media

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"property-service/internal/apperror"
	"property-service/internal/model"
)

// AllowedFormats are the accepted image extensions.
var AllowedFormats = []string{"jpg", "jpeg", "png", "webp"}

// File is an uploaded image waiting to be stored.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Store uploads and deletes hosted images.
type Store interface {
	Upload(ctx context.Context, f File) (model.Image, error)
	Delete(ctx context.Context, publicID string) error
}

// CheckFile rejects non-image uploads and files above maxBytes.
func CheckFile(f File, maxBytes int64) error {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return apperror.Validation("Only image files are allowed")
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
	if !allowedFormat(ext) {
		return apperror.Validationf("Image format must be one of: %s", strings.Join(AllowedFormats, ", "))
	}
	if maxBytes > 0 && f.Size > maxBytes {
		return apperror.Validationf("Image %s exceeds the %dMB limit", f.Name, maxBytes/(1024*1024))
	}
	return nil
}

func allowedFormat(ext string) bool {
	for _, f := range AllowedFormats {
		if f == ext {
			return true
		}
	}
	return false
}
