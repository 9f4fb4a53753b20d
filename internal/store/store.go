package store

import (
	"context"

	"github.com/quantum-forge/internal/types"
)

// Store defines the interface for save persistence.
// Implementations treat the record payload as opaque; decoding and
// validation happen in the save package.
type Store interface {
	// SaveGame inserts or replaces a save record
	SaveGame(ctx context.Context, record *types.SaveRecord) error

	// LoadGame retrieves a save record by ID
	LoadGame(ctx context.Context, id string) (*types.SaveRecord, error)

	// DeleteGame removes a save record. Deleting a missing record is not an error.
	DeleteGame(ctx context.Context, id string) error
}

// Errors
var (
	ErrSaveNotFound = &StoreError{Message: "save not found"}
)

// StoreError represents a storage error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
