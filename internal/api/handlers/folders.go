package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go-media-library/internal/api/middleware"
	"go-media-library/internal/media"

	"github.com/gin-gonic/gin"
)

// FolderHandler exposes the folder tree and the folder trash lifecycle.
type FolderHandler struct {
	tree      *media.FolderTree
	lifecycle *media.Lifecycle
	store     *media.Store
	trash     *media.TrashRegistry
}

func NewFolderHandler(tree *media.FolderTree, lifecycle *media.Lifecycle, store *media.Store, trash *media.TrashRegistry) *FolderHandler {
	return &FolderHandler{tree: tree, lifecycle: lifecycle, store: store, trash: trash}
}

// Create handles folder creation
func (h *FolderHandler) Create(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,min=1,max=255"`
		ParentID *uint  `json:"parent_id,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: folder name is required"})
		return
	}

	folder, err := h.tree.Create(input.Name, input.ParentID, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": folder})
}

// List returns the ordered children of a parent folder (root by default).
func (h *FolderHandler) List(c *gin.Context) {
	folders, err := h.tree.Children(parseFolderID(c.Query("parent_id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": folders})
}

// Tree returns the full folder hierarchy for UI consumption.
func (h *FolderHandler) Tree(c *gin.Context) {
	nodes, err := h.tree.Tree()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": nodes})
}

// Update renames a folder and/or moves it to a new parent.
func (h *FolderHandler) Update(c *gin.Context) {
	id, err := folderParam(c)
	if err != nil {
		return
	}

	var input struct {
		Name     string `json:"name"`
		ParentID *uint  `json:"parent_id"`
		Position *int   `json:"position"`
		Move     bool   `json:"move"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if input.Name != "" {
		if _, err := h.tree.Rename(id, input.Name); err != nil {
			respondError(c, err)
			return
		}
	}

	if input.Move {
		position := 0
		if input.Position != nil {
			position = *input.Position
		}
		if _, err := h.tree.Move(id, input.ParentID, position); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Folder updated successfully"})
}

// UpdatePositions applies a batch of sibling position changes.
func (h *FolderHandler) UpdatePositions(c *gin.Context) {
	var input struct {
		Positions []media.PositionUpdate `json:"positions" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: positions are required"})
		return
	}

	if err := h.tree.Reorder(input.Positions); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Positions updated successfully"})
}

// Delete soft-deletes a folder into the trash, or purges it (with its
// contents) when it is already trashed.
func (h *FolderHandler) Delete(c *gin.Context) {
	id, err := folderParam(c)
	if err != nil {
		return
	}

	purged, err := h.lifecycle.SoftDeleteFolder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if purged {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Folder permanently deleted", "permanently_deleted": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Folder moved to trash", "moved_to_trash": true})
}

// Restore brings a trashed folder and its cascaded media back.
func (h *FolderHandler) Restore(c *gin.Context) {
	id, err := folderParam(c)
	if err != nil {
		return
	}

	folder, err := h.lifecycle.RestoreFolder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Folder restored successfully", "data": folder})
}

// SyncPath relocates the physical files under a folder's freshly resolved
// path after renames or moves higher up the tree.
func (h *FolderHandler) SyncPath(c *gin.Context) {
	id, err := folderParam(c)
	if err != nil {
		return
	}

	moved, err := h.store.SyncFolderPath(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Folder path synchronized", "relocated_count": moved})
}

var errInvalidFolderID = errors.New("invalid folder id")

// folderParam parses the :id path parameter, writing the error response
// itself when the value is unusable.
func folderParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Folder ID must be a positive number"})
		return 0, errInvalidFolderID
	}
	return uint(id), nil
}
