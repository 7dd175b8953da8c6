package repository

import (
	"errors"
	"fmt"

	"github.com/jbweber/homelab/territoire/internal/datastore"
)

// Common repository errors that can be checked with errors.Is()
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when attempting to create an entity that already exists
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a store constraint
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInUse is returned when deleting an entity that other rows still reference
	ErrInUse = errors.New("entity still referenced")

	// ErrInvalidSort is returned for an unsupported paging sort key
	ErrInvalidSort = errors.New("unsupported sort key")
)

// translateWriteError maps driver constraint failures onto the sentinels.
func translateWriteError(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case datastore.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", what, ErrDuplicate)
	case datastore.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %v", what, ErrInvalidEntity, err)
	case datastore.IsCheckViolation(err):
		return fmt.Errorf("%s: %w: %v", what, ErrInvalidEntity, err)
	}
	return fmt.Errorf("failed to save %s: %w", what, err)
}
