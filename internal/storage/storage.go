package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage defines the physical file store backing the media library. All
// paths are relative to the store root; the directory layout mirrors the
// slugified folder hierarchy.
type Storage interface {
	Write(relPath string, data []byte) error
	Read(relPath string) ([]byte, error)
	Rename(oldRel, newRel string) error
	Remove(relPath string) error
	EnsureDir(relDir string) error
	Exists(relPath string) bool
	Abs(relPath string) string
}

// Local implements Storage on the local filesystem.
type Local struct {
	root string
}

// NewLocal creates a local store rooted at the given directory, creating
// it if absent.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root path is required")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Local{root: root}, nil
}

// Abs resolves a relative path against the store root.
func (l *Local) Abs(relPath string) string {
	return filepath.Join(l.root, filepath.FromSlash(relPath))
}

// Write stores data at relPath, creating parent directories as needed.
func (l *Local) Write(relPath string, data []byte) error {
	abs := l.Abs(relPath)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(abs, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Read returns the contents of the file at relPath.
func (l *Local) Read(relPath string) ([]byte, error) {
	return os.ReadFile(l.Abs(relPath))
}

// Rename moves a file, creating the target directory as needed.
func (l *Local) Rename(oldRel, newRel string) error {
	newAbs := l.Abs(newRel)
	if err := os.MkdirAll(filepath.Dir(newAbs), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.Rename(l.Abs(oldRel), newAbs)
}

// Remove deletes the file at relPath. Callers that tolerate a missing
// file check for os.IsNotExist themselves.
func (l *Local) Remove(relPath string) error {
	return os.Remove(l.Abs(relPath))
}

// EnsureDir creates the directory at relDir if it does not exist.
func (l *Local) EnsureDir(relDir string) error {
	return os.MkdirAll(l.Abs(relDir), 0755)
}

// Exists reports whether a regular file exists at relPath.
func (l *Local) Exists(relPath string) bool {
	info, err := os.Stat(l.Abs(relPath))
	return err == nil && info.Mode().IsRegular()
}
