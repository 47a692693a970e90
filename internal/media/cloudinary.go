package media

import (
	"context"
	"errors"
	"fmt"

	"property-service/internal/model"
	"property-service/pkg/config"
	"property-service/prometheus"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Listings are scaled down to fit within 1200x800.
const listingTransformation = "c_limit,w_1200,h_800"

// CloudinaryStore keeps images on Cloudinary.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore builds a store from API credentials.
func NewCloudinaryStore(cfg *config.MediaConfig) (*CloudinaryStore, error) {
	if !cfg.Enabled() {
		return nil, errors.New("cloudinary credentials not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{cld: cld, folder: cfg.Folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, f File) (model.Image, error) {
	res, err := s.cld.Upload.Upload(ctx, f.Content, uploader.UploadParams{
		Folder:         s.folder,
		AllowedFormats: api.CldAPIArray(AllowedFormats),
		Transformation: listingTransformation,
	})
	if err == nil && res.Error.Message != "" {
		err = errors.New(res.Error.Message)
	}
	prometheus.RecordMediaOperation("upload", err)
	if err != nil {
		return model.Image{}, fmt.Errorf("upload %s: %w", f.Name, err)
	}
	return model.Image{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err == nil && res.Error.Message != "" {
		err = errors.New(res.Error.Message)
	}
	prometheus.RecordMediaOperation("delete", err)
	if err != nil {
		return fmt.Errorf("delete %s: %w", publicID, err)
	}
	return nil
}
