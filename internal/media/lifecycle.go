package media

import (
	"errors"
	"fmt"
	"time"

	"go-media-library/internal/logger"
	"go-media-library/internal/models"

	"gorm.io/gorm"
)

// Lifecycle is the state machine behind soft-delete, restore and purge
// for media and folders. Trashing is a logical relocation only: the
// physical file stays at its pre-trash path and is touched again only on
// purge or explicit path sync.
type Lifecycle struct {
	db    *gorm.DB
	store *Store
	trash *TrashRegistry
	tree  *FolderTree
	log   *logger.Logger
}

func NewLifecycle(db *gorm.DB, store *Store, trash *TrashRegistry, tree *FolderTree, log *logger.Logger) *Lifecycle {
	return &Lifecycle{db: db, store: store, trash: trash, tree: tree, log: log}
}

// SoftDelete moves a media record into the trash. Deleting an item that
// is already trashed permanently purges it instead ("delete again =
// permanently delete"). The returned flag reports whether a purge
// happened.
func (l *Lifecycle) SoftDelete(id string) (*models.Media, bool, error) {
	trashID, err := l.trash.TrashFolderID()
	if err != nil {
		return nil, false, err
	}

	var record models.Media
	purged := false
	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := lockedFirst(tx, &record, id); err != nil {
			return err
		}

		if record.FolderID != nil && *record.FolderID == trashID {
			purged = true
			return l.store.purgeLocked(tx, &record)
		}

		now := time.Now().UTC()
		record.OriginalFolderID = record.FolderID
		record.FolderID = &trashID
		record.DeletedAt = &now
		if err := tx.Model(&models.Media{}).Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"original_folder_id": record.OriginalFolderID,
				"folder_id":          trashID,
				"deleted_at":         now,
			}).Error; err != nil {
			return err
		}

		l.log.Info("media moved to trash: id=%s from_folder=%v", record.ID, record.OriginalFolderID)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &record, purged, nil
}

// Restore moves a trashed media record back to the folder it was deleted
// from. The physical file never moved, so no file operation happens.
func (l *Lifecycle) Restore(id string) (*models.Media, error) {
	trashID, err := l.trash.TrashFolderID()
	if err != nil {
		return nil, err
	}

	var record models.Media
	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := lockedFirst(tx, &record, id); err != nil {
			return err
		}
		if record.FolderID == nil || *record.FolderID != trashID {
			return ErrNotInTrash
		}

		record.FolderID = record.OriginalFolderID
		record.OriginalFolderID = nil
		record.DeletedAt = nil
		if err := tx.Model(&models.Media{}).Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"folder_id":          record.FolderID,
				"original_folder_id": nil,
				"deleted_at":         nil,
			}).Error; err != nil {
			return err
		}

		l.log.Info("media restored from trash: id=%s to_folder=%v", record.ID, record.FolderID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Purge irreversibly removes a media file and its record regardless of
// trash membership.
func (l *Lifecycle) Purge(id string) error {
	return l.store.DeletePermanently(id)
}

// EmptyTrash purges every media record currently in the trash. Items are
// handled independently: a failure on one never aborts the batch, and the
// returned count is the number of records actually removed.
func (l *Lifecycle) EmptyTrash() (int, error) {
	trashID, err := l.trash.TrashFolderID()
	if err != nil {
		return 0, err
	}

	var records []models.Media
	if err := l.db.Where("folder_id = ?", trashID).Find(&records).Error; err != nil {
		return 0, err
	}

	deleted := 0
	for i := range records {
		if err := l.store.DeletePermanently(records[i].ID); err != nil {
			l.log.Warn("empty trash: failed to purge %s: %v", records[i].ID, err)
			continue
		}
		deleted++
	}

	l.log.Info("trash emptied: deleted_files=%d", deleted)
	return deleted, nil
}

// SoftDeleteFolder moves a folder (with its subtree) into the trash and
// cascades a soft delete to all media contained in the subtree. Deleting
// an already-trashed folder purges the subtree: contained media files and
// records are removed, then the folder records. Returns whether a purge
// happened.
func (l *Lifecycle) SoftDeleteFolder(id uint) (bool, error) {
	var folder models.Folder
	if err := l.db.First(&folder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: folder %d", ErrNotFound, id)
		}
		return false, err
	}
	if folder.IsTrash {
		return false, &ValidationError{Msg: "the trash folder cannot be deleted"}
	}

	trashID, err := l.trash.TrashFolderID()
	if err != nil {
		return false, err
	}

	if folder.DeletedAt != nil {
		return true, l.purgeFolder(&folder)
	}

	subtree, err := l.tree.Descendants(id)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Folder{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"original_parent_id": folder.ParentID,
				"parent_id":          trashID,
				"deleted_at":         now,
			}).Error; err != nil {
			return err
		}

		// Each contained media keeps its own folder as the restore target.
		var records []models.Media
		if err := tx.Where("folder_id IN ? AND deleted_at IS NULL", subtree).Find(&records).Error; err != nil {
			return err
		}
		for i := range records {
			if err := tx.Model(&models.Media{}).Where("id = ?", records[i].ID).
				Updates(map[string]interface{}{
					"original_folder_id": records[i].FolderID,
					"folder_id":          trashID,
					"deleted_at":         now,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	l.log.Info("folder moved to trash: id=%d cascaded_subtree=%d", id, len(subtree))
	return false, nil
}

// RestoreFolder moves a trashed folder back under its original parent and
// restores the media that were cascade-deleted with it. If the original
// parent no longer exists the folder is restored to root.
func (l *Lifecycle) RestoreFolder(id uint) (*models.Folder, error) {
	var folder models.Folder
	if err := l.db.First(&folder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: folder %d", ErrNotFound, id)
		}
		return nil, err
	}
	if folder.DeletedAt == nil {
		return nil, ErrNotInTrash
	}

	parentID := folder.OriginalParentID
	if parentID != nil {
		var parent models.Folder
		if err := l.db.First(&parent, *parentID).Error; err != nil {
			parentID = nil
		}
	}

	subtree, err := l.tree.Descendants(id)
	if err != nil {
		return nil, err
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Folder{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"parent_id":          parentID,
				"original_parent_id": nil,
				"deleted_at":         nil,
			}).Error; err != nil {
			return err
		}

		var records []models.Media
		if err := tx.Where("original_folder_id IN ? AND deleted_at IS NOT NULL", subtree).
			Find(&records).Error; err != nil {
			return err
		}
		for i := range records {
			if err := tx.Model(&models.Media{}).Where("id = ?", records[i].ID).
				Updates(map[string]interface{}{
					"folder_id":          records[i].OriginalFolderID,
					"original_folder_id": nil,
					"deleted_at":         nil,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Info("folder restored from trash: id=%d parent=%v", id, parentID)
	folder.ParentID = parentID
	folder.OriginalParentID = nil
	folder.DeletedAt = nil
	return &folder, nil
}

// purgeFolder removes a trashed folder subtree: contained media first
// (files best-effort, records authoritative), then the folder rows.
func (l *Lifecycle) purgeFolder(folder *models.Folder) error {
	subtree, err := l.tree.Descendants(folder.ID)
	if err != nil {
		return err
	}

	var records []models.Media
	if err := l.db.Where("folder_id IN ? OR original_folder_id IN ?", subtree, subtree).
		Find(&records).Error; err != nil {
		return err
	}
	for i := range records {
		if err := l.store.DeletePermanently(records[i].ID); err != nil {
			l.log.Warn("folder purge: failed to remove media %s: %v", records[i].ID, err)
		}
	}

	if err := l.db.Delete(&models.Folder{}, "id IN ?", subtree).Error; err != nil {
		return err
	}

	l.log.Info("folder permanently deleted: id=%d subtree=%d media=%d", folder.ID, len(subtree), len(records))
	return nil
}
