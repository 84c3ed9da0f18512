package utils

import (
	"strings"
	"testing"

	"go-media-library/internal/models"
)

func TestFileExtension(t *testing.T) {
	cases := map[string]string{
		"report.PDF":  "pdf",
		"photo.jpeg":  "jpeg",
		"archive.tar": "tar",
		"noext":       "",
	}
	for input, want := range cases {
		if got := FileExtension(input); got != want {
			t.Errorf("FileExtension(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestGenerateStoredName(t *testing.T) {
	name := GenerateStoredName("My Photo.PNG")
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("extension not kept: %q", name)
	}
	if strings.Contains(name, "My Photo") {
		t.Errorf("original name leaked into stored name: %q", name)
	}
	if !strings.Contains(name, "_") {
		t.Errorf("missing timestamp separator: %q", name)
	}

	if GenerateStoredName("a.txt") == GenerateStoredName("a.txt") {
		t.Error("two generated names collided")
	}
}

func TestFileTypeFromMime(t *testing.T) {
	cases := map[string]string{
		"image/png":       models.TypePhoto,
		"image/svg+xml":   models.TypePhoto,
		"video/mp4":       models.TypeVideo,
		"application/pdf": models.TypeDocument,
		"text/plain":      models.TypeDocument,
		"":                models.TypeDocument,
	}
	for mime, want := range cases {
		if got := FileTypeFromMime(mime); got != want {
			t.Errorf("FileTypeFromMime(%q) = %q, want %q", mime, got, want)
		}
	}
}

func TestProbeImageDimensionsRejectsGarbage(t *testing.T) {
	w, h := ProbeImageDimensions([]byte("not an image"))
	if w != nil || h != nil {
		t.Error("expected nil dimensions for undecodable data")
	}
}
