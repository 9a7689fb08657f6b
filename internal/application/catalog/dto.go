package catalog

import (
	"time"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

// UpdateCategoryRequest represents a request to rename a category.
// Version is the version the caller last observed.
type UpdateCategoryRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=64"`
	Version int64   `json:"version" binding:"required,min=1"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU         string           `json:"sku" binding:"required,min=1,max=16"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Description string           `json:"description" binding:"required,min=1,max=255"`
	CategoryID  *uuid.UUID       `json:"category_id"`
}

// UpdateProductRequest represents a request to update a product.
// The SKU is immutable and absent here. A nil CategoryID detaches the
// product from its category.
type UpdateProductRequest struct {
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Description string           `json:"description" binding:"required,min=1,max=255"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	Version     int64            `json:"version" binding:"required,min=1"`
}

// ProductResponse represents a product in API responses.
// Cleared discount fields are rendered as zeros.
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	CategoryName  *string         `json:"category_name"`
	Discount      int64           `json:"discount"`
	DiscountPrice decimal.Decimal `json:"discount_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int64           `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	CategoryID   *uuid.UUID `form:"category_id"`
	CategoryName string     `form:"category_name"`
	Page         int        `form:"page" binding:"min=0"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	Sort         string     `form:"sort"`
	Order        string     `form:"order" binding:"omitempty,oneof=asc desc"`
}

// CreateDiscountRuleRequest represents a request to create a discount rule
type CreateDiscountRuleRequest struct {
	Scope      string     `json:"scope" binding:"required,oneof=CATEGORY SKU_SUFFIX"`
	CategoryID *uuid.UUID `json:"category_id"`
	SKUSuffix  *string    `json:"sku_suffix" binding:"omitempty,min=1,max=16"`
	Percent    *int64     `json:"percent" binding:"required,min=0,max=100"`
}

// UpdateDiscountRuleRequest represents a request to update a discount rule
type UpdateDiscountRuleRequest struct {
	Scope      *string    `json:"scope" binding:"omitempty,oneof=CATEGORY SKU_SUFFIX"`
	CategoryID *uuid.UUID `json:"category_id"`
	SKUSuffix  *string    `json:"sku_suffix" binding:"omitempty,min=1,max=16"`
	Percent    *int64     `json:"percent" binding:"omitempty,min=0,max=100"`
	Version    int64      `json:"version" binding:"required,min=1"`
}

// DiscountRuleResponse represents a discount rule in API responses
type DiscountRuleResponse struct {
	ID         uuid.UUID  `json:"id"`
	Scope      string     `json:"scope"`
	CategoryID *uuid.UUID `json:"category_id"`
	SKUSuffix  *string    `json:"sku_suffix"`
	Percent    int64      `json:"percent"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Version    int64      `json:"version"`
}

// DiscountRuleListFilter represents filter options for the rule list
type DiscountRuleListFilter struct {
	Page     int `form:"page" binding:"min=0"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Price:         p.Price,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		Discount:      p.DiscountPercent(),
		DiscountPrice: p.DiscountedPrice(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToDiscountRuleResponse converts a domain DiscountRule to DiscountRuleResponse
func ToDiscountRuleResponse(r *catalog.DiscountRule) *DiscountRuleResponse {
	return &DiscountRuleResponse{
		ID:         r.ID,
		Scope:      string(r.Scope),
		CategoryID: r.CategoryID,
		SKUSuffix:  r.SKUSuffix,
		Percent:    r.Percent,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Version:    r.Version,
	}
}
