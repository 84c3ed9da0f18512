package media

import (
	"bytes"
	"image"
	"testing"
	"time"

	"go-media-library/internal/logger"
	"go-media-library/internal/models"
	"go-media-library/internal/storage"

	"github.com/disintegration/imaging"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the core components against an in-memory database and a
// temporary storage root.
type testEnv struct {
	db        *gorm.DB
	files     *storage.Local
	resolver  *PathResolver
	trash     *TrashRegistry
	tree      *FolderTree
	store     *Store
	lifecycle *Lifecycle
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	files, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}

	log := logger.Discard()
	resolver := NewPathResolver(db)
	trash := NewTrashRegistry(db, "Trash")
	tree := NewFolderTree(db, trash)
	store := NewStore(db, files, resolver, trash, tree, log)
	lifecycle := NewLifecycle(db, store, trash, tree, log)

	return &testEnv{
		db:        db,
		files:     files,
		resolver:  resolver,
		trash:     trash,
		tree:      tree,
		store:     store,
		lifecycle: lifecycle,
	}
}

// mustFolder inserts a folder directly, bypassing tree validation.
func (e *testEnv) mustFolder(t *testing.T, name string, parentID *uint) *models.Folder {
	t.Helper()
	folder := models.Folder{Name: name, ParentID: parentID}
	if err := e.db.Create(&folder).Error; err != nil {
		t.Fatalf("failed to create folder %q: %v", name, err)
	}
	return &folder
}

// mustCreate uploads a document into the given folder.
func (e *testEnv) mustCreate(t *testing.T, name string, folderID *uint) *models.Media {
	t.Helper()
	record, err := e.store.Create(CreateInput{
		Data:         []byte("content of " + name),
		OriginalName: name,
		MimeType:     "application/pdf",
		FolderID:     folderID,
	})
	if err != nil {
		t.Fatalf("failed to create media %q: %v", name, err)
	}
	return record
}

// pngBytes encodes a small image for dimension-probe tests.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func uintPtr(v uint) *uint {
	return &v
}
