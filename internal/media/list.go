package media

import (
	"strings"

	"go-media-library/internal/models"
)

// ListOptions filters a media listing. FolderID nil targets the root;
// listing always has a folder context, matching the browsing UI.
type ListOptions struct {
	FolderID         *uint
	OriginalFolderID *uint
	Search           string
	Type             string
	Extension        string
	SortBy           string
	SortOrder        string
	Page             int
	PerPage          int
	OwnerID          *uint
}

// allowedSortFields guards ORDER BY against arbitrary column injection.
var allowedSortFields = map[string]bool{
	"name":          true,
	"original_name": true,
	"size":          true,
	"type":          true,
	"created_at":    true,
	"updated_at":    true,
}

// List returns one page of media plus the unpaginated total. Listing the
// trash folder includes soft-deleted items (all of them, by definition);
// listing anywhere else filters soft-deleted rows out even if a stale
// folder_id points there.
func (s *Store) List(opts ListOptions) ([]models.Media, int64, error) {
	inTrash, err := s.trash.IsTrash(opts.FolderID)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Media{})
	if opts.FolderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *opts.FolderID)
	}
	if !inTrash {
		query = query.Where("deleted_at IS NULL")
	}

	if opts.OriginalFolderID != nil {
		query = query.Where("original_folder_id = ?", *opts.OriginalFolderID)
	}
	if opts.OwnerID != nil {
		query = query.Where("user_id = ?", *opts.OwnerID)
	}
	if opts.Type != "" {
		query = query.Where("type = ?", opts.Type)
	}
	if opts.Extension != "" {
		query = query.Where("extension = ?", opts.Extension)
	}
	if search := strings.TrimSpace(opts.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			s.db.Where("original_name LIKE ?", pattern).
				Or("name LIKE ?", pattern).
				Or("extension LIKE ?", pattern),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(sortClause(opts.SortBy, opts.SortOrder))

	if opts.PerPage > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * opts.PerPage).Limit(opts.PerPage)
	}

	var records []models.Media
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func sortClause(sortBy, sortOrder string) string {
	if !allowedSortFields[sortBy] {
		return "created_at desc"
	}
	order := "desc"
	if strings.EqualFold(sortOrder, "asc") {
		order = "asc"
	}
	return sortBy + " " + order
}
