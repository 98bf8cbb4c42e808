package libs

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"storefront/apperror"
	"storefront/config"
	"storefront/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryImageStore struct {
	cld     *cloudinary.Cloudinary
	maxSize int64
}

// NewCloudinaryImageStore prefers the separate CLOUDINARY_* credentials and
// falls back to CLOUDINARY_URL. It returns nil when neither is configured.
func NewCloudinaryImageStore(cfg *config.Config) (*CloudinaryImageStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "":
		cld, err = cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case cfg.CloudinaryURL != "":
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryImageStore{cld: cld, maxSize: cfg.MaxUploadSize}, nil
}

func (s *CloudinaryImageStore) Save(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	if _, err := ValidateImage(header, s.maxSize); err != nil {
		return "", err
	}

	src, err := header.Open()
	if err != nil {
		return "", apperror.Validation("cannot read uploaded file")
	}
	defer src.Close()

	publicID := fmt.Sprintf("%s_%d", folder, time.Now().UnixNano())
	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		PublicID: publicID,
		Folder:   folder,
	})
	if err != nil {
		return "", apperror.External("image upload failed", err)
	}
	if resp == nil || resp.Error.Message != "" {
		msg := "empty response"
		if resp != nil {
			msg = resp.Error.Message
		}
		return "", apperror.External("image upload failed", fmt.Errorf("cloudinary: %s", msg))
	}

	logger.FromContext(ctx).Info("image uploaded", slog.String("public_id", resp.PublicID))
	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	if resp.URL != "" {
		return resp.URL, nil
	}
	return "", apperror.External("image upload failed", fmt.Errorf("cloudinary returned no url"))
}
