package media

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"go-media-library/internal/models"

	"gorm.io/gorm"
)

// FolderTree owns parent/child/position relationships between folders.
type FolderTree struct {
	db    *gorm.DB
	trash *TrashRegistry
}

func NewFolderTree(db *gorm.DB, trash *TrashRegistry) *FolderTree {
	return &FolderTree{db: db, trash: trash}
}

// FolderNode is a folder with its ordered children, for tree projections.
type FolderNode struct {
	models.Folder
	Children []*FolderNode `json:"children"`
}

// PositionUpdate assigns a new sibling position to a folder.
type PositionUpdate struct {
	ID       uint `json:"id" binding:"required"`
	Position int  `json:"position"`
}

// Create adds a folder under the given parent, placed after its siblings.
func (ft *FolderTree) Create(name string, parentID *uint, userID *uint) (*models.Folder, error) {
	if name == "" {
		return nil, &ValidationError{Msg: "folder name is required"}
	}
	if parentID != nil {
		if _, err := ft.folder(*parentID); err != nil {
			return nil, err
		}
	}

	var position int64
	ft.db.Model(&models.Folder{}).Scopes(parentScope(parentID)).Count(&position)

	folder := models.Folder{
		Name:     name,
		ParentID: parentID,
		Position: int(position),
		UserID:   userID,
	}
	if err := ft.db.Create(&folder).Error; err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return &folder, nil
}

// Rename updates a folder's display name. Physical paths of contained
// media are not relocated here; SyncFolderPath is the explicit bulk
// operation for that.
func (ft *FolderTree) Rename(id uint, name string) (*models.Folder, error) {
	if name == "" {
		return nil, &ValidationError{Msg: "folder name is required"}
	}
	folder, err := ft.folder(id)
	if err != nil {
		return nil, err
	}
	if folder.IsTrash {
		return nil, &ValidationError{Msg: "the trash folder cannot be renamed"}
	}
	if err := ft.db.Model(folder).Update("name", name).Error; err != nil {
		return nil, err
	}
	return folder, nil
}

// Move reparents a folder and places it at the given sibling position.
// The move is rejected with ErrCyclicMove when the new parent is the
// folder itself or one of its descendants.
func (ft *FolderTree) Move(id uint, newParentID *uint, position int) (*models.Folder, error) {
	folder, err := ft.folder(id)
	if err != nil {
		return nil, err
	}
	if folder.IsTrash {
		return nil, &ValidationError{Msg: "the trash folder cannot be moved"}
	}

	if newParentID != nil {
		isTrash, err := ft.trash.IsTrash(newParentID)
		if err != nil {
			return nil, err
		}
		if isTrash {
			return nil, ErrTrashWrite
		}
		if err := ft.checkNoCycle(id, *newParentID); err != nil {
			return nil, err
		}
	}

	err = ft.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Folder{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"parent_id": newParentID,
				"position":  position,
			}).Error; err != nil {
			return err
		}
		oldParent := folder.ParentID
		if !sameFolder(oldParent, newParentID) {
			if err := normalizePositions(tx, oldParent, nil); err != nil {
				return err
			}
		}
		return normalizePositions(tx, newParentID, map[uint]int{id: position})
	})
	if err != nil {
		return nil, err
	}

	return ft.folder(id)
}

// Reorder applies a batch of position updates and rewrites each affected
// sibling group so positions stay contiguous, ties broken by the
// siblings' prior order.
func (ft *FolderTree) Reorder(updates []PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return ft.db.Transaction(func(tx *gorm.DB) error {
		parents := map[string]*uint{}
		overrides := map[string]map[uint]int{}
		for _, u := range updates {
			var folder models.Folder
			if err := tx.First(&folder, u.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: folder %d", ErrNotFound, u.ID)
				}
				return err
			}
			key := parentKey(folder.ParentID)
			parents[key] = folder.ParentID
			if overrides[key] == nil {
				overrides[key] = map[uint]int{}
			}
			overrides[key][u.ID] = u.Position
		}
		for key, parentID := range parents {
			if err := normalizePositions(tx, parentID, overrides[key]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Children returns the direct children of a parent, ordered by position.
func (ft *FolderTree) Children(parentID *uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := ft.db.Scopes(parentScope(parentID)).
		Order("position asc, id asc").
		Find(&folders).Error
	return folders, err
}

// Tree returns the full folder hierarchy as nested nodes, children
// ordered by position. Trashed folders appear under the trash folder.
func (ft *FolderTree) Tree() ([]*FolderNode, error) {
	var folders []models.Folder
	if err := ft.db.Order("position asc, id asc").Find(&folders).Error; err != nil {
		return nil, err
	}

	nodes := make(map[uint]*FolderNode, len(folders))
	for i := range folders {
		nodes[folders[i].ID] = &FolderNode{Folder: folders[i]}
	}

	var roots []*FolderNode
	for i := range folders {
		node := nodes[folders[i].ID]
		if folders[i].ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*folders[i].ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots, nil
}

// Descendants returns the ids of all folders in the subtree rooted at id,
// the root included.
func (ft *FolderTree) Descendants(id uint) ([]uint, error) {
	ids := []uint{id}
	frontier := []uint{id}
	for len(frontier) > 0 {
		var children []models.Folder
		if err := ft.db.Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, c := range children {
			ids = append(ids, c.ID)
			frontier = append(frontier, c.ID)
		}
	}
	return ids, nil
}

func (ft *FolderTree) folder(id uint) (*models.Folder, error) {
	var folder models.Folder
	if err := ft.db.First(&folder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: folder %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &folder, nil
}

// checkNoCycle walks up from the proposed parent; meeting the moved
// folder on the way to root means the move would create a cycle.
func (ft *FolderTree) checkNoCycle(id, newParentID uint) error {
	if id == newParentID {
		return ErrCyclicMove
	}
	visited := map[uint]bool{}
	current := &newParentID
	for current != nil {
		if *current == id {
			return ErrCyclicMove
		}
		if visited[*current] {
			return fmt.Errorf("%w: folder %d", ErrFolderCycle, *current)
		}
		visited[*current] = true

		folder, err := ft.folder(*current)
		if err != nil {
			return err
		}
		current = folder.ParentID
	}
	return nil
}

// normalizePositions rewrites a sibling group's positions to 0..n-1.
// Overrides are the requested new positions; siblings are loaded in their
// prior order first so equal positions keep that order (stable sort,
// never dropping anyone).
func normalizePositions(tx *gorm.DB, parentID *uint, overrides map[uint]int) error {
	var siblings []models.Folder
	if err := tx.Scopes(parentScope(parentID)).
		Order("position asc, id asc").
		Find(&siblings).Error; err != nil {
		return err
	}
	stored := make(map[uint]int, len(siblings))
	for i := range siblings {
		stored[siblings[i].ID] = siblings[i].Position
		if pos, ok := overrides[siblings[i].ID]; ok {
			siblings[i].Position = pos
		}
	}
	sort.SliceStable(siblings, func(i, j int) bool {
		return siblings[i].Position < siblings[j].Position
	})
	for i := range siblings {
		if stored[siblings[i].ID] == i {
			continue
		}
		if err := tx.Model(&models.Folder{}).Where("id = ?", siblings[i].ID).
			Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}

func parentKey(parentID *uint) string {
	if parentID == nil {
		return "root"
	}
	return strconv.FormatUint(uint64(*parentID), 10)
}

// parentScope scopes a query to one sibling group; nil means root.
func parentScope(parentID *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if parentID == nil {
			return db.Where("parent_id IS NULL")
		}
		return db.Where("parent_id = ?", *parentID)
	}
}
