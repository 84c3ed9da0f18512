package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Media file types derived from the source MIME type at upload.
const (
	TypePhoto    = "photo"
	TypeVideo    = "video"
	TypeDocument = "document"
)

// Metadata keys maintained by the media store.
const (
	MetaPath     = "path"
	MetaMimeType = "mime_type"
)

// Media represents an uploaded file tracked by the library.
//
// DeletedAt is deliberately a plain *time.Time rather than gorm.DeletedAt:
// trash residency is an explicit state owned by the lifecycle, and trashed
// rows must stay visible to trash listings and purge queries.
type Media struct {
	ID               string     `json:"id" gorm:"primarykey"`
	Name             string     `json:"name" gorm:"not null"`
	OriginalName     string     `json:"original_name"`
	Extension        string     `json:"extension"`
	Type             string     `json:"type" gorm:"index"`
	Size             int64      `json:"size"`
	Width            *int       `json:"width"`
	Height           *int       `json:"height"`
	FolderID         *uint      `json:"folder_id" gorm:"index"`
	OriginalFolderID *uint      `json:"original_folder_id" gorm:"index"`
	UserID           *uint      `json:"user_id" gorm:"index"`
	Disk             string     `json:"disk"`
	Metadata         JSON       `json:"metadata" gorm:"type:jsonb"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at" gorm:"index"`
}

// Path returns the file's current on-disk location relative to the storage
// root. The metadata entry is authoritative; the disk/name pair is the
// fallback for records written before metadata tracking.
func (m *Media) Path() string {
	if p, ok := m.Metadata[MetaPath].(string); ok && p != "" {
		return p
	}
	if m.Disk == "" {
		return m.Name
	}
	return m.Disk + "/" + m.Name
}

// InTrash reports whether the record is soft-deleted.
func (m *Media) InTrash() bool {
	return m.DeletedAt != nil
}

// TableName specifies the table name for the Media model
func (Media) TableName() string {
	return "media"
}

// JSON is a custom type for handling JSON data in the database
type JSON map[string]interface{}

// MarshalJSON implements the json.Marshaler interface
func (j JSON) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(j))
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (j *JSON) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	err := json.Unmarshal(data, &m)
	if err != nil {
		return err
	}
	*j = JSON(m)
	return nil
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = JSON{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value")
	}

	var result map[string]interface{}
	err := json.Unmarshal(bytes, &result)
	if err != nil {
		return err
	}
	*j = JSON(result)
	return nil
}

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}
