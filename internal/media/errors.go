package media

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced folder or media id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrTrashWrite indicates an attempted upload or move into the trash
	// folder through the generic path; trash membership changes must go
	// through the lifecycle.
	ErrTrashWrite = errors.New("writes into the trash folder are not allowed")

	// ErrCyclicMove indicates a folder move that would make the folder its
	// own ancestor.
	ErrCyclicMove = errors.New("folder move would create a cycle")

	// ErrNotInTrash indicates a restore on an item that is not trashed.
	ErrNotInTrash = errors.New("item is not in the trash")

	// ErrTrashFolderMissing indicates the trash singleton could not be
	// resolved or created.
	ErrTrashFolderMissing = errors.New("trash folder could not be resolved")

	// ErrFolderCycle indicates a cycle in the stored parent chain. This is
	// a data-integrity failure, never expected in correct operation.
	ErrFolderCycle = errors.New("folder hierarchy contains a cycle")
)

// ValidationError marks bad input detected before storage is touched.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// PhysicalMoveError wraps a filesystem failure during a write or rename
// that aborted the operation before any record change.
type PhysicalMoveError struct {
	Op   string
	Path string
	Err  error
}

func (e *PhysicalMoveError) Error() string {
	return fmt.Sprintf("physical %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *PhysicalMoveError) Unwrap() error {
	return e.Err
}
