package catalog

import (
	"strings"
	"time"

	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DiscountScope determines what a discount rule matches against
type DiscountScope string

const (
	// ScopeCategory matches every product in one category
	ScopeCategory DiscountScope = "CATEGORY"
	// ScopeSKUSuffix matches every product whose SKU ends with the suffix
	ScopeSKUSuffix DiscountScope = "SKU_SUFFIX"
)

// MaxSKUSuffixLength is the maximum length of a rule's SKU suffix
const MaxSKUSuffixLength = 16

// DiscountRule represents a percentage discount applied either to a whole
// category or to products matching a SKU suffix. The scope fields are
// mutually exclusive and never partially populated.
type DiscountRule struct {
	shared.BaseAggregateRoot
	Scope      DiscountScope `gorm:"type:varchar(16);not null;index"`
	CategoryID *uuid.UUID    `gorm:"type:uuid;index"`
	SKUSuffix  *string       `gorm:"type:varchar(16);index"`
	Percent    int64         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DiscountRule) TableName() string {
	return "discount_rules"
}

// NewCategoryRule creates a discount rule scoped to a category
func NewCategoryRule(categoryID uuid.UUID, percent int64) (*DiscountRule, error) {
	if err := validatePercent(percent); err != nil {
		return nil, err
	}

	return &DiscountRule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Scope:             ScopeCategory,
		CategoryID:        &categoryID,
		Percent:           percent,
	}, nil
}

// NewSKUSuffixRule creates a discount rule scoped to a SKU suffix
func NewSKUSuffixRule(suffix string, percent int64) (*DiscountRule, error) {
	if err := validateSKUSuffix(suffix); err != nil {
		return nil, err
	}
	if err := validatePercent(percent); err != nil {
		return nil, err
	}

	return &DiscountRule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Scope:             ScopeSKUSuffix,
		SKUSuffix:         &suffix,
		Percent:           percent,
	}, nil
}

// SetPercent updates the discount percentage
func (r *DiscountRule) SetPercent(percent int64) error {
	if err := validatePercent(percent); err != nil {
		return err
	}

	r.Percent = percent
	r.UpdatedAt = time.Now()

	return nil
}

// Retarget moves the rule to a new scope target, keeping the scope fields
// mutually exclusive. Exactly one of categoryID and skuSuffix must be set.
func (r *DiscountRule) Retarget(scope DiscountScope, categoryID *uuid.UUID, skuSuffix *string) error {
	switch scope {
	case ScopeCategory:
		if categoryID == nil || skuSuffix != nil {
			return shared.NewDomainError("INVALID_INPUT", "Category rule requires a category ID and no SKU suffix")
		}
		r.CategoryID = categoryID
		r.SKUSuffix = nil
	case ScopeSKUSuffix:
		if skuSuffix == nil || categoryID != nil {
			return shared.NewDomainError("INVALID_INPUT", "SKU suffix rule requires a suffix and no category ID")
		}
		if err := validateSKUSuffix(*skuSuffix); err != nil {
			return err
		}
		r.CategoryID = nil
		r.SKUSuffix = skuSuffix
	default:
		return shared.NewDomainError("INVALID_INPUT", "Unknown discount scope")
	}

	r.Scope = scope
	r.UpdatedAt = time.Now()

	return nil
}

// validateSKUSuffix validates a rule's SKU suffix
func validateSKUSuffix(suffix string) error {
	if strings.TrimSpace(suffix) == "" {
		return shared.NewDomainError("INVALID_INPUT", "SKU suffix cannot be blank")
	}
	if len(suffix) > MaxSKUSuffixLength {
		return shared.NewDomainError("INVALID_INPUT", "SKU suffix cannot exceed 16 characters")
	}
	return nil
}

// validatePercent validates a discount percentage
func validatePercent(percent int64) error {
	if percent < 0 || percent > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Discount percent must be between 0 and 100")
	}
	return nil
}
