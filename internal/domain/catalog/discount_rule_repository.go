package catalog

import (
	"context"

	"github.com/google/uuid"
)

// DiscountRuleRepository defines the interface for discount rule persistence
type DiscountRuleRepository interface {
	// FindByID finds a rule by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*DiscountRule, error)

	// FindByIDForUpdate finds a rule by ID holding an exclusive row lock;
	// must run inside a transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*DiscountRule, error)

	// FindFirstByCategoryID returns the category rule for the given category,
	// or nil when none exists
	FindFirstByCategoryID(ctx context.Context, categoryID uuid.UUID) (*DiscountRule, error)

	// FindBestSuffixMatch returns the suffix rule whose suffix matches the
	// end of the SKU, preferring the longest suffix and breaking ties on the
	// lowest rule ID; nil when none matches
	FindBestSuffixMatch(ctx context.Context, sku string) (*DiscountRule, error)

	// FindAll returns one zero-based page of rules ordered by creation time
	FindAll(ctx context.Context, page, pageSize int) ([]DiscountRule, error)

	// Count counts all rules
	Count(ctx context.Context) (int64, error)

	// Insert creates a new rule
	Insert(ctx context.Context, rule *DiscountRule) error

	// UpdateWithVersion saves the rule iff the stored version still equals
	// expectedVersion, bumping the version in the same statement.
	// Returns shared.ErrConcurrencyConflict when no row matches.
	UpdateWithVersion(ctx context.Context, rule *DiscountRule, expectedVersion int64) error

	// Delete removes a rule
	Delete(ctx context.Context, id uuid.UUID) error
}
