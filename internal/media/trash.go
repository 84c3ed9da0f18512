package media

import (
	"errors"
	"fmt"
	"sync"

	"go-media-library/internal/models"

	"gorm.io/gorm"
)

// trashKey is the fixed value stored in folders.trash_key for the trash
// singleton. The unique index on that column is what guarantees at most
// one trash folder exists no matter how many callers race the creation.
const trashKey = "trash"

// TrashRegistry resolves the single trash folder, creating it lazily with
// the configured display name, and answers trash-membership checks.
type TrashRegistry struct {
	db         *gorm.DB
	folderName string

	mu       sync.Mutex
	cachedID uint
}

func NewTrashRegistry(db *gorm.DB, folderName string) *TrashRegistry {
	return &TrashRegistry{db: db, folderName: folderName}
}

// TrashFolder returns the trash folder, creating it under root if none
// exists. Creation is idempotent under concurrent callers: a loser of the
// insert race re-reads the winner's row instead of erroring.
func (t *TrashRegistry) TrashFolder() (*models.Folder, error) {
	var folder models.Folder
	err := t.db.Where("is_trash = ?", true).First(&folder).Error
	if err == nil {
		t.remember(folder.ID)
		return &folder, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrTrashFolderMissing, err)
	}

	key := trashKey
	folder = models.Folder{
		Name:     t.folderName,
		IsTrash:  true,
		TrashKey: &key,
	}
	if createErr := t.db.Create(&folder).Error; createErr != nil {
		// Lost the creation race; the winner's row must be there now.
		folder = models.Folder{}
		if err := t.db.Where("is_trash = ?", true).First(&folder).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTrashFolderMissing, createErr)
		}
	}

	t.remember(folder.ID)
	return &folder, nil
}

// TrashFolderID returns the trash folder id, creating the folder if needed.
func (t *TrashRegistry) TrashFolderID() (uint, error) {
	t.mu.Lock()
	id := t.cachedID
	t.mu.Unlock()
	if id != 0 {
		return id, nil
	}

	folder, err := t.TrashFolder()
	if err != nil {
		return 0, err
	}
	return folder.ID, nil
}

// IsTrash reports whether the given folder id is the trash folder. A nil
// id (root) is never the trash.
func (t *TrashRegistry) IsTrash(folderID *uint) (bool, error) {
	if folderID == nil {
		return false, nil
	}
	id, err := t.TrashFolderID()
	if err != nil {
		return false, err
	}
	return *folderID == id, nil
}

func (t *TrashRegistry) remember(id uint) {
	t.mu.Lock()
	t.cachedID = id
	t.mu.Unlock()
}
