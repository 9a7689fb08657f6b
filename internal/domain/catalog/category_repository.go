package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByIDForUpdate finds a category by ID holding an exclusive row lock;
	// must run inside a transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll returns all categories ordered by name
	FindAll(ctx context.Context) ([]Category, error)

	// ExistsByName checks if a category with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Insert creates a new category
	Insert(ctx context.Context, category *Category) error

	// UpdateWithVersion saves the category iff the stored version still
	// equals expectedVersion, bumping the version in the same statement.
	// Returns shared.ErrConcurrencyConflict when no row matches.
	UpdateWithVersion(ctx context.Context, category *Category, expectedVersion int64) error

	// Delete removes a category
	Delete(ctx context.Context, id uuid.UUID) error
}
