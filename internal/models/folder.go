package models

import "time"

// Folder is a node in the media folder tree. ParentID nil means root.
//
// Exactly one folder system-wide carries IsTrash. TrashKey backs that
// invariant with a unique index: it is set to a fixed value for the trash
// folder and left NULL everywhere else, so concurrent lazy creation can
// race and the database picks a single winner.
type Folder struct {
	ID               uint       `json:"id" gorm:"primarykey"`
	Name             string     `json:"name" gorm:"not null"`
	ParentID         *uint      `json:"parent_id" gorm:"index"`
	OriginalParentID *uint      `json:"original_parent_id"`
	Position         int        `json:"position" gorm:"default:0"`
	IsTrash          bool       `json:"is_trash" gorm:"default:false"`
	TrashKey         *string    `json:"-" gorm:"uniqueIndex"`
	UserID           *uint      `json:"user_id" gorm:"index"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at" gorm:"index"`

	MediaCount int64 `json:"media_count" gorm:"-"`
}

func (Folder) TableName() string {
	return "folders"
}
