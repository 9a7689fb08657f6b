package catalog

import (
	"strings"
	"time"

	"github.com/catalog/backend/internal/domain/shared"
)

// MaxCategoryNameLength is the maximum length of a category name
const MaxCategoryNameLength = 64

// Category represents a product category
// Products reference it by ID; the category side holds no product collection
type Category struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(64);not null;uniqueIndex:idx_categories_name"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()

	return nil
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Category name cannot be blank")
	}
	if len(name) > MaxCategoryNameLength {
		return shared.NewDomainError("INVALID_INPUT", "Category name cannot exceed 64 characters")
	}
	return nil
}
