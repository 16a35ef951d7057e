package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPost is returned when title or contents are missing.
	ErrInvalidPost = errors.New("title and contents are required")
	// ErrInvalidComment is returned when the comment text is missing.
	ErrInvalidComment = errors.New("text is required")
	// ErrPostNotFound is returned when the referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")
)

// StorageError wraps any failure of the storage backend.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// invalid keeps the sentinel matchable with errors.Is while carrying the
// validator detail.
func invalid(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}
