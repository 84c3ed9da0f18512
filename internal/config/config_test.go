package config

import "testing"

func TestMimeTypeAllowed(t *testing.T) {
	upload := UploadConfig{
		AllowedMimeTypes: []string{"image/png", "application/pdf"},
	}

	if !upload.MimeTypeAllowed("image/png") {
		t.Error("listed type rejected")
	}
	if !upload.MimeTypeAllowed("IMAGE/PNG") {
		t.Error("comparison must be case-insensitive")
	}
	if upload.MimeTypeAllowed("video/mp4") {
		t.Error("unlisted type accepted")
	}

	upload.AllowAllTypes = true
	if !upload.MimeTypeAllowed("anything/at-all") {
		t.Error("allow-all must accept any type")
	}
}

func TestClampPerPage(t *testing.T) {
	p := PaginationConfig{PerPageDefault: 20, PerPageMax: 100}

	if got := p.ClampPerPage(0); got != 20 {
		t.Errorf("ClampPerPage(0) = %d, want default 20", got)
	}
	if got := p.ClampPerPage(-5); got != 20 {
		t.Errorf("ClampPerPage(-5) = %d, want default 20", got)
	}
	if got := p.ClampPerPage(250); got != 100 {
		t.Errorf("ClampPerPage(250) = %d, want max 100", got)
	}
	if got := p.ClampPerPage(42); got != 42 {
		t.Errorf("ClampPerPage(42) = %d, want 42", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Trash.FolderName == "" {
		t.Error("trash folder name must have a default")
	}
	if cfg.Upload.MaxUploadSize <= 0 {
		t.Error("max upload size must have a positive default")
	}
	if len(cfg.Upload.AllowedMimeTypes) == 0 {
		t.Error("allowed mime types must have a default list")
	}
}
