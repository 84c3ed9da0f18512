package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"go-media-library/internal/api/handlers"
	"go-media-library/internal/api/routes"
	"go-media-library/internal/config"
	"go-media-library/internal/database"
	"go-media-library/internal/logger"
	"go-media-library/internal/media"
	"go-media-library/internal/models"
	"go-media-library/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	appLog := logger.New("media-library", cfg.Log)

	// Initialize Database
	if err := database.Initialize(cfg); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	db := database.GetDB()
	if err := models.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize physical storage
	files, err := storage.NewLocal(cfg.Storage.Path)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	// Wire the core services
	resolver := media.NewPathResolver(db)
	trash := media.NewTrashRegistry(db, cfg.Trash.FolderName)
	tree := media.NewFolderTree(db, trash)
	store := media.NewStore(db, files, resolver, trash, tree, appLog.Named("store"))
	lifecycle := media.NewLifecycle(db, store, trash, tree, appLog.Named("lifecycle"))

	// Initialize Router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	routes.Setup(router, cfg,
		handlers.NewAuthHandler(db, cfg),
		handlers.NewMediaHandler(store, lifecycle, cfg),
		handlers.NewFolderHandler(tree, lifecycle, store, trash),
	)

	appLog.Info("server starting on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
