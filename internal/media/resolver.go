package media

import (
	"errors"
	"fmt"
	"strings"

	"go-media-library/internal/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// PathResolver computes the on-disk directory for a folder by walking its
// ancestor chain and slugifying each name. It never caches: an ancestor
// rename or move must be reflected by the next call.
type PathResolver struct {
	db *gorm.DB
}

func NewPathResolver(db *gorm.DB) *PathResolver {
	return &PathResolver{db: db}
}

// FolderPath returns the slug path for a folder relative to the storage
// root, e.g. "images/2024". A nil id (root) resolves to "".
func (r *PathResolver) FolderPath(folderID *uint) (string, error) {
	if folderID == nil {
		return "", nil
	}

	var segments []string
	visited := map[uint]bool{}
	currentID := folderID

	for currentID != nil {
		if visited[*currentID] {
			return "", fmt.Errorf("%w: folder %d", ErrFolderCycle, *currentID)
		}
		visited[*currentID] = true

		var folder models.Folder
		if err := r.db.First(&folder, *currentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", fmt.Errorf("%w: folder %d", ErrNotFound, *currentID)
			}
			return "", err
		}

		segments = append([]string{slug.Make(folder.Name)}, segments...)
		currentID = folder.ParentID
	}

	return strings.Join(segments, "/"), nil
}

// MediaPath joins a resolved folder path with a stored filename.
func MediaPath(folderPath, name string) string {
	if folderPath == "" {
		return name
	}
	return folderPath + "/" + name
}
