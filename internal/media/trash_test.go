package media

import (
	"sync"
	"testing"

	"go-media-library/internal/models"
)

func TestTrashFolderLazyCreation(t *testing.T) {
	env := newTestEnv(t)

	var count int64
	env.db.Model(&models.Folder{}).Where("is_trash = ?", true).Count(&count)
	if count != 0 {
		t.Fatalf("expected no trash folder before first use, found %d", count)
	}

	folder, err := env.trash.TrashFolder()
	if err != nil {
		t.Fatalf("TrashFolder returned error: %v", err)
	}
	if !folder.IsTrash {
		t.Fatal("created folder is not flagged as trash")
	}
	if folder.Name != "Trash" {
		t.Fatalf("expected configured name Trash, got %q", folder.Name)
	}
	if folder.ParentID != nil {
		t.Fatal("trash folder should live under root")
	}
}

func TestTrashFolderSingletonUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)

	const callers = 16
	var wg sync.WaitGroup
	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registry := NewTrashRegistry(env.db, "Trash")
			if _, err := registry.TrashFolder(); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent TrashFolder call failed: %v", err)
	}

	var count int64
	env.db.Model(&models.Folder{}).Where("is_trash = ?", true).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one trash folder, found %d", count)
	}
}

func TestIsTrash(t *testing.T) {
	env := newTestEnv(t)

	trashFolder, err := env.trash.TrashFolder()
	if err != nil {
		t.Fatalf("TrashFolder returned error: %v", err)
	}
	other := env.mustFolder(t, "docs", nil)

	if ok, _ := env.trash.IsTrash(nil); ok {
		t.Error("root must never classify as trash")
	}
	if ok, _ := env.trash.IsTrash(&other.ID); ok {
		t.Error("regular folder classified as trash")
	}
	if ok, _ := env.trash.IsTrash(&trashFolder.ID); !ok {
		t.Error("trash folder not classified as trash")
	}
}
