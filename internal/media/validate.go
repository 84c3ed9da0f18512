package media

import (
	"fmt"

	"go-media-library/internal/config"
)

// ValidateUpload enforces the configured size limit and MIME allow-list.
// This runs before the store is touched; the store itself never re-checks.
func ValidateUpload(cfg *config.UploadConfig, size int64, mimeType string) error {
	if size <= 0 {
		return &ValidationError{Msg: "uploaded file is empty"}
	}
	if size > cfg.MaxUploadSize {
		return &ValidationError{Msg: fmt.Sprintf("file size exceeds the %d byte limit", cfg.MaxUploadSize)}
	}
	if !cfg.MimeTypeAllowed(mimeType) {
		return &ValidationError{Msg: fmt.Sprintf("file type %s is not allowed", mimeType)}
	}
	return nil
}
