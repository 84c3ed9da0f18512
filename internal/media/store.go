package media

import (
	"errors"
	"fmt"
	"os"

	"go-media-library/internal/logger"
	"go-media-library/internal/models"
	"go-media-library/internal/storage"
	"go-media-library/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store owns media records and keeps the physical file in lockstep with
// every record mutation. Physical operations run first, the record commit
// second, so a mid-failure leaves an orphaned file rather than a record
// pointing at nothing.
type Store struct {
	db       *gorm.DB
	files    storage.Storage
	resolver *PathResolver
	trash    *TrashRegistry
	tree     *FolderTree
	log      *logger.Logger
}

func NewStore(db *gorm.DB, files storage.Storage, resolver *PathResolver, trash *TrashRegistry, tree *FolderTree, log *logger.Logger) *Store {
	return &Store{db: db, files: files, resolver: resolver, trash: trash, tree: tree, log: log}
}

// CreateInput carries everything needed to store a new upload.
type CreateInput struct {
	Data         []byte
	OriginalName string
	MimeType     string
	FolderID     *uint
	UserID       *uint
}

// Create writes the uploaded file under the target folder's resolved path
// and commits a new media record. Uploads directly into the trash folder
// are rejected.
func (s *Store) Create(in CreateInput) (*models.Media, error) {
	if in.FolderID != nil {
		var folder models.Folder
		if err := s.db.First(&folder, *in.FolderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: folder %d", ErrNotFound, *in.FolderID)
			}
			return nil, err
		}
		if folder.IsTrash {
			return nil, ErrTrashWrite
		}
	}

	dir, err := s.resolver.FolderPath(in.FolderID)
	if err != nil {
		return nil, err
	}

	name := utils.GenerateStoredName(in.OriginalName)
	relPath := MediaPath(dir, name)

	if err := s.files.EnsureDir(dir); err != nil {
		return nil, &PhysicalMoveError{Op: "mkdir", Path: dir, Err: err}
	}
	if err := s.files.Write(relPath, in.Data); err != nil {
		return nil, &PhysicalMoveError{Op: "write", Path: relPath, Err: err}
	}

	fileType := utils.FileTypeFromMime(in.MimeType)
	var width, height *int
	if fileType == models.TypePhoto {
		width, height = utils.ProbeImageDimensions(in.Data)
	}

	record := models.Media{
		ID:           uuid.NewString(),
		Name:         name,
		OriginalName: in.OriginalName,
		Extension:    utils.FileExtension(in.OriginalName),
		Type:         fileType,
		Size:         int64(len(in.Data)),
		Width:        width,
		Height:       height,
		FolderID:     in.FolderID,
		UserID:       in.UserID,
		Disk:         dir,
		Metadata: models.JSON{
			models.MetaPath:     relPath,
			models.MetaMimeType: in.MimeType,
		},
	}

	if err := s.db.Create(&record).Error; err != nil {
		// The record never existed; don't leave the file behind.
		if rmErr := s.files.Remove(relPath); rmErr != nil && !os.IsNotExist(rmErr) {
			s.log.Warn("failed to clean up file after create error: %v", rmErr)
		}
		return nil, fmt.Errorf("failed to save media record: %w", err)
	}

	s.log.Info("media created: id=%s path=%s", record.ID, relPath)
	return &record, nil
}

// Get returns a media record by id, optionally scoped to an owner.
func (s *Store) Get(id string, ownerID *uint) (*models.Media, error) {
	var record models.Media
	query := s.db.Where("id = ?", id)
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	if err := query.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: media %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &record, nil
}

// Move relocates a media file to another folder: physical rename first,
// record commit second. Moving into the trash must go through the
// lifecycle, not here. A move to the current folder is a no-op.
func (s *Store) Move(id string, newFolderID *uint) (*models.Media, error) {
	isTrash, err := s.trash.IsTrash(newFolderID)
	if err != nil {
		return nil, err
	}
	if isTrash {
		return nil, ErrTrashWrite
	}
	if newFolderID != nil {
		var folder models.Folder
		if err := s.db.First(&folder, *newFolderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: folder %d", ErrNotFound, *newFolderID)
			}
			return nil, err
		}
	}

	var record models.Media
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockedFirst(tx, &record, id); err != nil {
			return err
		}
		if sameFolder(record.FolderID, newFolderID) {
			return nil
		}

		newDir, err := s.resolver.FolderPath(newFolderID)
		if err != nil {
			return err
		}
		oldPath := record.Path()
		newPath := MediaPath(newDir, record.Name)

		if err := s.files.Rename(oldPath, newPath); err != nil {
			return &PhysicalMoveError{Op: "rename", Path: oldPath, Err: err}
		}

		record.FolderID = newFolderID
		record.Disk = newDir
		record.Metadata[models.MetaPath] = newPath
		if err := tx.Model(&models.Media{}).Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"folder_id": newFolderID,
				"disk":      newDir,
				"metadata":  record.Metadata,
			}).Error; err != nil {
			return err
		}

		s.log.Info("media moved: id=%s from=%s to=%s", record.ID, oldPath, newPath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ReplaceContent swaps the stored file for new content under a freshly
// generated name in the media's current folder. The old file is removed
// best-effort; a missing old file is not an error. The folder assignment
// does not change.
func (s *Store) ReplaceContent(id string, data []byte, originalName, mimeType string) (*models.Media, error) {
	var record models.Media
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockedFirst(tx, &record, id); err != nil {
			return err
		}

		oldPath := record.Path()
		if err := s.files.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove old file during replace: %v", err)
		}

		dir, err := s.resolver.FolderPath(record.FolderID)
		if err != nil {
			return err
		}
		name := utils.GenerateStoredName(originalName)
		relPath := MediaPath(dir, name)

		if err := s.files.Write(relPath, data); err != nil {
			return &PhysicalMoveError{Op: "write", Path: relPath, Err: err}
		}

		fileType := utils.FileTypeFromMime(mimeType)
		var width, height *int
		if fileType == models.TypePhoto {
			width, height = utils.ProbeImageDimensions(data)
		}

		record.Name = name
		record.OriginalName = originalName
		record.Extension = utils.FileExtension(originalName)
		record.Type = fileType
		record.Size = int64(len(data))
		record.Width = width
		record.Height = height
		record.Disk = dir
		record.Metadata[models.MetaPath] = relPath
		record.Metadata[models.MetaMimeType] = mimeType

		if err := tx.Model(&models.Media{}).Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"name":          name,
				"original_name": originalName,
				"extension":     record.Extension,
				"type":          fileType,
				"size":          record.Size,
				"width":         width,
				"height":        height,
				"disk":          dir,
				"metadata":      record.Metadata,
			}).Error; err != nil {
			return err
		}

		s.log.Info("media content replaced: id=%s path=%s", record.ID, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeletePermanently removes the physical file and the record. A missing
// file is tolerated; the record-level removal is authoritative.
func (s *Store) DeletePermanently(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var record models.Media
		if err := lockedFirst(tx, &record, id); err != nil {
			return err
		}
		return s.purgeLocked(tx, &record)
	})
}

// purgeLocked removes the file (best-effort) and the row. The caller
// holds the row lock.
func (s *Store) purgeLocked(tx *gorm.DB, record *models.Media) error {
	path := record.Path()
	if err := s.files.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove file during purge: id=%s err=%v", record.ID, err)
	}
	if err := tx.Delete(&models.Media{}, "id = ?", record.ID).Error; err != nil {
		return err
	}
	s.log.Info("media permanently deleted: id=%s path=%s", record.ID, path)
	return nil
}

// SyncFolderPath re-resolves the path of every folder in the subtree and
// physically relocates contained media whose stored path went stale after
// a folder rename or move. Trashed media keep their pre-trash location.
// Returns the number of files relocated.
func (s *Store) SyncFolderPath(folderID uint) (int, error) {
	folderIDs, err := s.tree.Descendants(folderID)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, fid := range folderIDs {
		fid := fid
		dir, err := s.resolver.FolderPath(&fid)
		if err != nil {
			return moved, err
		}

		var records []models.Media
		if err := s.db.Where("folder_id = ? AND deleted_at IS NULL", fid).Find(&records).Error; err != nil {
			return moved, err
		}

		for i := range records {
			record := &records[i]
			newPath := MediaPath(dir, record.Name)
			oldPath := record.Path()
			if oldPath == newPath {
				continue
			}
			if err := s.files.Rename(oldPath, newPath); err != nil {
				s.log.Warn("sync skipped %s: %v", record.ID, err)
				continue
			}
			if record.Metadata == nil {
				record.Metadata = models.JSON{}
			}
			record.Metadata[models.MetaPath] = newPath
			if err := s.db.Model(&models.Media{}).Where("id = ?", record.ID).
				Updates(map[string]interface{}{
					"disk":     dir,
					"metadata": record.Metadata,
				}).Error; err != nil {
				return moved, err
			}
			moved++
		}
	}

	if moved > 0 {
		s.log.Info("folder path synced: folder=%d relocated=%d", folderID, moved)
	}
	return moved, nil
}

// lockedFirst loads a media row for update. Row locking needs the real
// FOR UPDATE clause only on postgres; sqlite serializes writers itself.
func lockedFirst(tx *gorm.DB, record *models.Media, id string) error {
	query := tx.Where("id = ?", id)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: media %s", ErrNotFound, id)
		}
		return err
	}
	if record.Metadata == nil {
		record.Metadata = models.JSON{}
	}
	return nil
}

func sameFolder(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
