package media

import (
	"errors"
	"testing"

	"go-media-library/internal/models"
)

func TestCreateIntoRoot(t *testing.T) {
	env := newTestEnv(t)

	record, err := env.store.Create(CreateInput{
		Data:         pngBytes(t, 32, 24),
		OriginalName: "photo.png",
		MimeType:     "image/png",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if record.Type != models.TypePhoto {
		t.Errorf("expected type photo, got %q", record.Type)
	}
	if record.Name == "photo.png" {
		t.Error("stored name must be generated, not the original name")
	}
	if record.OriginalName != "photo.png" {
		t.Errorf("original name lost: %q", record.OriginalName)
	}
	if record.Extension != "png" {
		t.Errorf("expected extension png, got %q", record.Extension)
	}
	if record.Width == nil || record.Height == nil || *record.Width != 32 || *record.Height != 24 {
		t.Errorf("expected probed dimensions 32x24, got %v x %v", record.Width, record.Height)
	}
	if record.Disk != "" {
		t.Errorf("root upload should have empty disk prefix, got %q", record.Disk)
	}
	if !env.files.Exists(record.Path()) {
		t.Errorf("physical file missing at %s", record.Path())
	}
}

func TestCreateIntoFolderCreatesDirectory(t *testing.T) {
	env := newTestEnv(t)

	docs := env.mustFolder(t, "Docs", nil)
	record := env.mustCreate(t, "report.pdf", &docs.ID)

	if record.Disk != "docs" {
		t.Errorf("expected disk docs, got %q", record.Disk)
	}
	if record.Path() != "docs/"+record.Name {
		t.Errorf("unexpected path %q", record.Path())
	}
	if !env.files.Exists(record.Path()) {
		t.Error("physical file missing under folder directory")
	}
}

func TestCreateProbeFailureLeavesDimensionsNull(t *testing.T) {
	env := newTestEnv(t)

	record, err := env.store.Create(CreateInput{
		Data:         []byte("not actually an image"),
		OriginalName: "broken.png",
		MimeType:     "image/png",
	})
	if err != nil {
		t.Fatalf("create must not fail on probe errors: %v", err)
	}
	if record.Width != nil || record.Height != nil {
		t.Error("dimensions must stay null when probing fails")
	}
}

func TestCreateRejectsTrashTarget(t *testing.T) {
	env := newTestEnv(t)

	trashFolder, err := env.trash.TrashFolder()
	if err != nil {
		t.Fatalf("TrashFolder returned error: %v", err)
	}

	_, err = env.store.Create(CreateInput{
		Data:         []byte("data"),
		OriginalName: "x.pdf",
		MimeType:     "application/pdf",
		FolderID:     &trashFolder.ID,
	})
	if !errors.Is(err, ErrTrashWrite) {
		t.Fatalf("expected ErrTrashWrite, got %v", err)
	}

	var count int64
	env.db.Model(&models.Media{}).Count(&count)
	if count != 0 {
		t.Error("no record may be created on a rejected upload")
	}
}

func TestStoredNamesDoNotCollide(t *testing.T) {
	env := newTestEnv(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		record := env.mustCreate(t, "same.pdf", nil)
		if seen[record.Name] {
			t.Fatalf("stored name collision: %q", record.Name)
		}
		seen[record.Name] = true
	}
}

func TestMoveRelocatesFile(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustFolder(t, "docs", nil)
	b := env.mustFolder(t, "images", nil)
	year := env.mustFolder(t, "2024", &b.ID)

	record := env.mustCreate(t, "scan.pdf", &a.ID)
	oldPath := record.Path()

	moved, err := env.store.Move(record.ID, &year.ID)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}

	wantPath := "images/2024/" + record.Name
	if moved.Path() != wantPath {
		t.Errorf("expected path %q, got %q", wantPath, moved.Path())
	}
	if moved.Disk != "images/2024" {
		t.Errorf("expected disk images/2024, got %q", moved.Disk)
	}
	if env.files.Exists(oldPath) {
		t.Error("old physical file still present after move")
	}
	if !env.files.Exists(wantPath) {
		t.Error("physical file missing at new location")
	}
}

func TestMoveToSameFolderIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustFolder(t, "docs", nil)
	record := env.mustCreate(t, "scan.pdf", &a.ID)

	moved, err := env.store.Move(record.ID, &a.ID)
	if err != nil {
		t.Fatalf("no-op move failed: %v", err)
	}
	if moved.Path() != record.Path() {
		t.Error("no-op move must not change the path")
	}
}

func TestMoveRejectsTrashTarget(t *testing.T) {
	env := newTestEnv(t)

	trashFolder, err := env.trash.TrashFolder()
	if err != nil {
		t.Fatalf("TrashFolder returned error: %v", err)
	}
	record := env.mustCreate(t, "scan.pdf", nil)

	_, err = env.store.Move(record.ID, &trashFolder.ID)
	if !errors.Is(err, ErrTrashWrite) {
		t.Fatalf("expected ErrTrashWrite, got %v", err)
	}
}

func TestMoveFailureLeavesRecordUntouched(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustFolder(t, "docs", nil)
	b := env.mustFolder(t, "images", nil)
	record := env.mustCreate(t, "scan.pdf", &a.ID)

	// Remove the physical file so the rename must fail.
	if err := env.files.Remove(record.Path()); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	_, err := env.store.Move(record.ID, &b.ID)
	var physicalErr *PhysicalMoveError
	if !errors.As(err, &physicalErr) {
		t.Fatalf("expected PhysicalMoveError, got %v", err)
	}

	reloaded, err := env.store.Get(record.ID, nil)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reloaded.FolderID == nil || *reloaded.FolderID != a.ID {
		t.Error("record folder changed despite failed physical move")
	}
	if reloaded.Path() != record.Path() {
		t.Error("record path changed despite failed physical move")
	}
}

func TestReplaceContent(t *testing.T) {
	env := newTestEnv(t)

	docs := env.mustFolder(t, "docs", nil)
	record := env.mustCreate(t, "draft.pdf", &docs.ID)
	oldPath := record.Path()

	updated, err := env.store.ReplaceContent(record.ID, pngBytes(t, 10, 10), "final.png", "image/png")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if updated.FolderID == nil || *updated.FolderID != docs.ID {
		t.Error("replace must not change the folder")
	}
	if updated.Name == record.Name {
		t.Error("replace must generate a fresh stored name")
	}
	if updated.OriginalName != "final.png" {
		t.Errorf("original name not updated: %q", updated.OriginalName)
	}
	if updated.Type != models.TypePhoto {
		t.Errorf("type not re-derived: %q", updated.Type)
	}
	if updated.Width == nil || *updated.Width != 10 {
		t.Error("dimensions not re-probed")
	}
	if env.files.Exists(oldPath) {
		t.Error("old file still present after replace")
	}
	if !env.files.Exists(updated.Path()) {
		t.Error("new file missing after replace")
	}
}

func TestReplaceContentToleratesMissingOldFile(t *testing.T) {
	env := newTestEnv(t)

	record := env.mustCreate(t, "draft.pdf", nil)
	if err := env.files.Remove(record.Path()); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	updated, err := env.store.ReplaceContent(record.ID, []byte("new content"), "v2.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("replace must tolerate a missing old file: %v", err)
	}
	if !env.files.Exists(updated.Path()) {
		t.Error("new file missing after replace")
	}
}

func TestDeletePermanently(t *testing.T) {
	env := newTestEnv(t)

	record := env.mustCreate(t, "gone.pdf", nil)
	path := record.Path()

	if err := env.store.DeletePermanently(record.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if env.files.Exists(path) {
		t.Error("physical file still present after permanent delete")
	}
	if _, err := env.store.Get(record.ID, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSyncFolderPathRelocatesSubtree(t *testing.T) {
	env := newTestEnv(t)

	docs := env.mustFolder(t, "Docs", nil)
	sub := env.mustFolder(t, "Reports", &docs.ID)
	inDocs := env.mustCreate(t, "a.pdf", &docs.ID)
	inSub := env.mustCreate(t, "b.pdf", &sub.ID)

	if _, err := env.tree.Rename(docs.ID, "Archive"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	moved, err := env.store.SyncFolderPath(docs.ID)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if moved != 2 {
		t.Fatalf("expected 2 relocated files, got %d", moved)
	}

	reloadedDocs, _ := env.store.Get(inDocs.ID, nil)
	if reloadedDocs.Path() != "archive/"+inDocs.Name {
		t.Errorf("unexpected path %q", reloadedDocs.Path())
	}
	reloadedSub, _ := env.store.Get(inSub.ID, nil)
	if reloadedSub.Path() != "archive/reports/"+inSub.Name {
		t.Errorf("unexpected path %q", reloadedSub.Path())
	}
	if !env.files.Exists(reloadedDocs.Path()) || !env.files.Exists(reloadedSub.Path()) {
		t.Error("relocated files missing on disk")
	}
}
