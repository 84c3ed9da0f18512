package utils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go-media-library/internal/models"

	"github.com/google/uuid"
)

// ParseIntOption parses a string value to an integer, returning 0 if the string is empty or invalid
func ParseIntOption(value string) int {
	if value == "" {
		return 0
	}
	num, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return num
}

// FileExtension returns the lowercased extension of a filename without the dot.
func FileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// GenerateStoredName builds a collision-resistant stored filename from a
// random component and a timestamp, keeping the original extension.
func GenerateStoredName(originalName string) string {
	ext := FileExtension(originalName)
	name := fmt.Sprintf("%s_%d", uuid.NewString(), time.Now().Unix())
	if ext != "" {
		name += "." + ext
	}
	return name
}

// FileTypeFromMime maps a MIME type to the stored media type.
func FileTypeFromMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.TypePhoto
	case strings.HasPrefix(mimeType, "video/"):
		return models.TypeVideo
	default:
		return models.TypeDocument
	}
}
