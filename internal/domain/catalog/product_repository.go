package catalog

import (
	"context"

	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence.
// Filter supports the keys "category_id" (uuid.UUID) and "category_name"
// (string, case-insensitive match).
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// FindAll finds products matching the filter, paged and sorted
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindPageByCategory returns one zero-based page of a category's products
	FindPageByCategory(ctx context.Context, categoryID uuid.UUID, page, pageSize int) ([]Product, error)

	// FindPageBySKUSuffix returns one zero-based page of products whose SKU
	// ends with the suffix
	FindPageBySKUSuffix(ctx context.Context, suffix string, page, pageSize int) ([]Product, error)

	// Insert creates a new product
	Insert(ctx context.Context, product *Product) error

	// UpdateWithVersion saves the product iff the stored version still
	// equals expectedVersion, bumping the version in the same statement.
	// Returns shared.ErrConcurrencyConflict when no row matches.
	UpdateWithVersion(ctx context.Context, product *Product, expectedVersion int64) error

	// SaveDiscounts persists the cached discount fields of a batch of
	// products atomically in one transaction
	SaveDiscounts(ctx context.Context, products []Product) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateCategoryName refreshes the denormalized category-name snapshot
	// of every product in the category
	UpdateCategoryName(ctx context.Context, categoryID uuid.UUID, name string) error

	// ClearDiscountsByCategory nulls the cached discount fields of every
	// product in the category
	ClearDiscountsByCategory(ctx context.Context, categoryID uuid.UUID) error

	// ClearDiscountsBySKUSuffix nulls the cached discount fields of every
	// product whose SKU ends with the suffix
	ClearDiscountsBySKUSuffix(ctx context.Context, suffix string) error

	// DetachCategory nulls the category reference, name snapshot and cached
	// discount fields of every product in the category
	DetachCategory(ctx context.Context, categoryID uuid.UUID) error
}
