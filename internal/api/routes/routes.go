package routes

import (
	"go-media-library/internal/api/handlers"
	"go-media-library/internal/api/middleware"
	"go-media-library/internal/config"

	"github.com/gin-gonic/gin"
)

// Setup configures all the routes for the application.
func Setup(router *gin.Engine, cfg *config.Config, auth *handlers.AuthHandler, mediaH *handlers.MediaHandler, folders *handlers.FolderHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
	}

	protected := v1.Group("/")
	protected.Use(middleware.Auth(cfg))
	{
		media := protected.Group("/media")
		{
			media.GET("", mediaH.List)
			media.POST("", mediaH.Upload)
			media.DELETE("/trash/empty", mediaH.EmptyTrash)
			media.GET("/:id", mediaH.Get)
			media.PUT("/:id/move", mediaH.Move)
			media.PUT("/:id/file", mediaH.ReplaceFile)
			media.POST("/:id/restore", mediaH.Restore)
			media.DELETE("/:id", mediaH.Delete)
		}

		folderGroup := protected.Group("/folders")
		{
			folderGroup.GET("", folders.List)
			folderGroup.GET("/tree/all", folders.Tree)
			folderGroup.POST("", folders.Create)
			folderGroup.POST("/update-positions", folders.UpdatePositions)
			folderGroup.PUT("/:id", folders.Update)
			folderGroup.POST("/:id/restore", folders.Restore)
			folderGroup.POST("/:id/sync-path", folders.SyncPath)
			folderGroup.DELETE("/:id", folders.Delete)
		}
	}
}
