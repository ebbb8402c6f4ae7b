package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a BlobStore when no blob exists for a key.
	ErrNotFound = errors.New("store: blob not found")
	// ErrInvalidKey is returned for keys that cannot name a blob.
	ErrInvalidKey = errors.New("store: invalid blob key")
	// ErrCorrupt is matched by StorageCorruptionError.
	ErrCorrupt = errors.New("store: corrupt blob")
)

// StorageCorruptionError reports a persisted collection that could not be
// decoded. Repositories log it and continue with an empty collection.
type StorageCorruptionError struct {
	Key string
	Err error
}

func (e *StorageCorruptionError) Error() string {
	return fmt.Sprintf("store: blob %q is not a valid form collection: %v", e.Key, e.Err)
}

func (e *StorageCorruptionError) Is(target error) bool { return target == ErrCorrupt }

func (e *StorageCorruptionError) Unwrap() error { return e.Err }
