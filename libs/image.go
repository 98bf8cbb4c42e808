package libs

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"storefront/apperror"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImage checks the upload's extension and size.
func ValidateImage(header *multipart.FileHeader, maxSize int64) (string, error) {
	if header == nil {
		return "", apperror.Validation("image file is required")
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", apperror.Validation("invalid file type, allowed: .jpg, .jpeg, .png, .gif, .webp")
	}
	if header.Size > maxSize {
		return "", apperror.Validation(fmt.Sprintf("file too large (max %d bytes)", maxSize))
	}
	return ext, nil
}
