package catalog

import (
	"strings"
	"time"

	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MaxSKULength is the maximum length of a product SKU
	MaxSKULength = 16
	// MaxDescriptionLength is the maximum length of a product description
	MaxDescriptionLength = 255
)

// Product represents a sellable item in the catalog.
// SKU is the immutable business key. The discount fields are a cache owned
// by the discount engine: NULL means no discount applies, and the cache may
// lag the rule set until the next recompute trigger.
type Product struct {
	shared.BaseAggregateRoot
	SKU           string           `gorm:"type:varchar(16);not null;uniqueIndex:idx_products_sku"`
	Price         decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Description   string           `gorm:"type:varchar(255);not null"`
	CategoryID    *uuid.UUID       `gorm:"type:uuid;index"`
	CategoryName  *string          `gorm:"type:varchar(64)"`
	Discount      *int64           `gorm:""`
	DiscountPrice *decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product. Price is rounded half-up to 2 decimals.
func NewProduct(sku string, price decimal.Decimal, description string) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Price:             price.Round(2),
		Description:       description,
	}, nil
}

// SetPrice updates the price, rounding half-up to 2 decimals
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Price = price.Round(2)
	p.UpdatedAt = time.Now()

	return nil
}

// SetDescription updates the description
func (p *Product) SetDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}

	p.Description = description
	p.UpdatedAt = time.Now()

	return nil
}

// AssignCategory attaches the product to a category and refreshes the
// denormalized name snapshot
func (p *Product) AssignCategory(category *Category) {
	p.CategoryID = &category.ID
	name := category.Name
	p.CategoryName = &name
	p.UpdatedAt = time.Now()
}

// ClearCategory detaches the product from its category
func (p *Product) ClearCategory() {
	p.CategoryID = nil
	p.CategoryName = nil
	p.UpdatedAt = time.Now()
}

// SetDiscount writes the cached discount fields
func (p *Product) SetDiscount(percent int64, discountPrice decimal.Decimal) {
	p.Discount = &percent
	p.DiscountPrice = &discountPrice
	p.UpdatedAt = time.Now()
}

// ClearDiscount resets the cached discount fields
func (p *Product) ClearDiscount() {
	p.Discount = nil
	p.DiscountPrice = nil
	p.UpdatedAt = time.Now()
}

// HasCategory returns true if the product has a category assigned
func (p *Product) HasCategory() bool {
	return p.CategoryID != nil
}

// DiscountPercent returns the cached discount percent, 0 when unset
func (p *Product) DiscountPercent() int64 {
	if p.Discount == nil {
		return 0
	}
	return *p.Discount
}

// DiscountedPrice returns the cached discounted price, 0 when unset
func (p *Product) DiscountedPrice() decimal.Decimal {
	if p.DiscountPrice == nil {
		return decimal.Zero
	}
	return *p.DiscountPrice
}

// validateSKU validates the product SKU
func validateSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product SKU cannot be blank")
	}
	if len(sku) > MaxSKULength {
		return shared.NewDomainError("INVALID_INPUT", "Product SKU cannot exceed 16 characters")
	}
	return nil
}

// validatePrice validates the product price
func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Product price must be positive")
	}
	return nil
}

// validateDescription validates the product description
func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product description cannot be blank")
	}
	if len(description) > MaxDescriptionLength {
		return shared.NewDomainError("INVALID_INPUT", "Product description cannot exceed 255 characters")
	}
	return nil
}
