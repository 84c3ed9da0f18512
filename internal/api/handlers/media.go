package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go-media-library/internal/api/middleware"
	"go-media-library/internal/config"
	"go-media-library/internal/media"
	"go-media-library/internal/utils"

	"github.com/gin-gonic/gin"
)

// MediaHandler exposes the media store and trash lifecycle over HTTP.
type MediaHandler struct {
	store     *media.Store
	lifecycle *media.Lifecycle
	cfg       *config.Config
}

func NewMediaHandler(store *media.Store, lifecycle *media.Lifecycle, cfg *config.Config) *MediaHandler {
	return &MediaHandler{store: store, lifecycle: lifecycle, cfg: cfg}
}

// List returns one page of media for a folder context.
func (h *MediaHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(h.cfg.Pagination.PerPageDefault)))

	opts := media.ListOptions{
		FolderID:         parseFolderID(c.Query("folder_id")),
		OriginalFolderID: parseFolderID(c.Query("original_folder_id")),
		Search:           c.Query("search"),
		Type:             c.Query("type"),
		Extension:        c.Query("extension"),
		SortBy:           c.DefaultQuery("sort_by", "created_at"),
		SortOrder:        c.DefaultQuery("sort_order", "desc"),
		Page:             page,
		PerPage:          h.cfg.Pagination.ClampPerPage(perPage),
		OwnerID:          h.ownerID(c),
	}

	records, total, err := h.store.List(opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"media": records,
		"pagination": gin.H{
			"current_page": page,
			"total_pages":  (total + int64(opts.PerPage) - 1) / int64(opts.PerPage),
			"total_items":  total,
			"per_page":     opts.PerPage,
		},
	})
}

// Upload stores a new file into the target folder.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded"})
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if err := media.ValidateUpload(&h.cfg.Upload, file.Size, mimeType); err != nil {
		respondError(c, err)
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fmt.Sprintf("Failed to open file: %v", err)})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fmt.Sprintf("Failed to read file: %v", err)})
		return
	}

	record, err := h.store.Create(media.CreateInput{
		Data:         data,
		OriginalName: file.Filename,
		MimeType:     mimeType,
		FolderID:     parseFolderID(c.PostForm("folder_id")),
		UserID:       middleware.CurrentUserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File uploaded successfully", "data": record})
}

// Get returns a single media record.
func (h *MediaHandler) Get(c *gin.Context) {
	record, err := h.store.Get(c.Param("id"), h.ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// Move relocates a media file to another folder.
func (h *MediaHandler) Move(c *gin.Context) {
	var input struct {
		FolderID *uint `json:"folder_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	record, err := h.store.Move(c.Param("id"), input.FolderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File moved successfully", "data": record})
}

// ReplaceFile swaps the stored content of an existing media record.
func (h *MediaHandler) ReplaceFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded"})
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if err := media.ValidateUpload(&h.cfg.Upload, file.Size, mimeType); err != nil {
		respondError(c, err)
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fmt.Sprintf("Failed to open file: %v", err)})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fmt.Sprintf("Failed to read file: %v", err)})
		return
	}

	record, err := h.store.ReplaceContent(c.Param("id"), data, file.Filename, mimeType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File updated successfully", "data": record})
}

// Delete soft-deletes a media record, or purges it when it is already in
// the trash.
func (h *MediaHandler) Delete(c *gin.Context) {
	record, purged, err := h.lifecycle.SoftDelete(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if purged {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "File permanently deleted", "permanently_deleted": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File moved to trash", "moved_to_trash": true, "data": record})
}

// Restore brings a trashed media record back to its original folder.
func (h *MediaHandler) Restore(c *gin.Context) {
	record, err := h.lifecycle.Restore(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File restored successfully", "data": record})
}

// EmptyTrash purges everything in the trash folder.
func (h *MediaHandler) EmptyTrash(c *gin.Context) {
	deleted, err := h.lifecycle.EmptyTrash()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       fmt.Sprintf("Trash emptied. Files deleted: %d", deleted),
		"deleted_count": deleted,
	})
}

// ownerID row-scopes reads when user scoping is active.
func (h *MediaHandler) ownerID(c *gin.Context) *uint {
	if !h.cfg.JWT.UserScoping {
		return nil
	}
	return middleware.CurrentUserID(c)
}

// parseFolderID treats "", "null" and "0" as root, matching the API's
// historical contract.
func parseFolderID(value string) *uint {
	if value == "" || value == "null" || value == "0" {
		return nil
	}
	id := utils.ParseIntOption(value)
	if id <= 0 {
		return nil
	}
	uid := uint(id)
	return &uid
}
