package handlers

import (
	"errors"
	"net/http"

	"go-media-library/internal/media"

	"github.com/gin-gonic/gin"
)

// respondError maps the media error taxonomy onto HTTP statuses with the
// API's failure envelope.
func respondError(c *gin.Context, err error) {
	var validationErr *media.ValidationError
	var physicalErr *media.PhysicalMoveError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Msg})
	case errors.Is(err, media.ErrTrashWrite):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Writes into the trash folder are not allowed. Use the delete operation instead."})
	case errors.Is(err, media.ErrCyclicMove):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "A folder cannot be moved into itself or one of its descendants."})
	case errors.Is(err, media.ErrNotInTrash):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Item is not in the trash."})
	case errors.Is(err, media.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Record not found."})
	case errors.Is(err, media.ErrTrashFolderMissing):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Trash folder not found."})
	case errors.As(err, &physicalErr):
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "File operation failed.", "error": physicalErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal error.", "error": err.Error()})
	}
}
