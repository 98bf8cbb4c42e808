package libs

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"

	"storefront/apperror"
)

// LocalImageStore writes uploads under Dir and returns a URL path under
// PublicPrefix, served by the router's static handler.
type LocalImageStore struct {
	Dir          string
	PublicPrefix string
	MaxSize      int64
}

func NewLocalImageStore(dir string, maxSize int64) *LocalImageStore {
	return &LocalImageStore{Dir: dir, PublicPrefix: "/uploads", MaxSize: maxSize}
}

func (s *LocalImageStore) Save(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	ext, err := ValidateImage(header, s.MaxSize)
	if err != nil {
		return "", err
	}

	uploadPath := filepath.Join(s.Dir, folder)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", apperror.Internal(fmt.Errorf("create upload dir: %w", err))
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)

	src, err := header.Open()
	if err != nil {
		return "", apperror.Validation("cannot read uploaded file")
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(uploadPath, filename))
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("create upload file: %w", err))
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", apperror.Internal(fmt.Errorf("write upload file: %w", err))
	}

	return path.Join(s.PublicPrefix, folder, filename), nil
}
