package repository

import "context"

// Repository defines the basic CRUD operations for any entity type.
// This follows a similar pattern to Spring Data's Repository interface.
type Repository[T any, ID comparable] interface {
	// Save creates the entity when its ID is zero and updates it otherwise
	// Returns ErrDuplicate when a unique key is already taken
	Save(ctx context.Context, entity T) (T, error)

	// FindByID retrieves an entity by its ID
	// Returns ErrNotFound if the entity doesn't exist
	FindByID(ctx context.Context, id ID) (T, error)

	// FindAll retrieves all entities in ID order
	FindAll(ctx context.Context) ([]T, error)

	// DeleteByID deletes an entity by its ID
	// Returns ErrNotFound if the entity doesn't exist
	DeleteByID(ctx context.Context, id ID) error

	// ExistsByID checks if an entity exists by its ID
	ExistsByID(ctx context.Context, id ID) (bool, error)
}

// PagingRepository adds counting and paged listing on top of Repository.
type PagingRepository[T any, ID comparable] interface {
	Repository[T, ID]

	// Count returns the number of stored entities
	Count(ctx context.Context) (int64, error)

	// FindAllPaged returns one page, ordered by the request's sort key
	// Returns ErrInvalidSort for keys the entity does not support
	FindAllPaged(ctx context.Context, req PageRequest) (Page[T], error)
}
