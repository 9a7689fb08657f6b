package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := dbFor(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := dbFor(ctx, r.db).First(&product, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ExistsBySKU checks if a product with the given SKU exists
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := dbFor(ctx, r.db).
		Model(&catalog.Product{}).
		Where("sku = ?", sku).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds products matching the filter, paged and sorted
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(dbFor(ctx, r.db).Model(&catalog.Product{}), filter)

	if filter.OrderBy != "" {
		query = query.Order(filter.OrderBy)
	} else {
		query = query.Order("id ASC")
	}

	if filter.PageSize > 0 {
		query = query.Offset(filter.Page * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(dbFor(ctx, r.db).Model(&catalog.Product{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindPageByCategory returns one zero-based page of a category's products
func (r *GormProductRepository) FindPageByCategory(ctx context.Context, categoryID uuid.UUID, page, pageSize int) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := dbFor(ctx, r.db).
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindPageBySKUSuffix returns one zero-based page of products whose SKU
// ends with the suffix
func (r *GormProductRepository) FindPageBySKUSuffix(ctx context.Context, suffix string, page, pageSize int) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := dbFor(ctx, r.db).
		Where("sku LIKE '%' || ?", suffix).
		Order("id ASC").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Insert creates a new product
func (r *GormProductRepository) Insert(ctx context.Context, product *catalog.Product) error {
	return dbFor(ctx, r.db).Create(product).Error
}

// UpdateWithVersion saves the product with a compare-and-swap on the
// version column. The store bumps the version in the same statement.
func (r *GormProductRepository) UpdateWithVersion(ctx context.Context, product *catalog.Product, expectedVersion int64) error {
	result := dbFor(ctx, r.db).
		Model(product).
		Where("id = ? AND version = ?", product.ID, expectedVersion).
		Updates(map[string]interface{}{
			"price":          product.Price,
			"description":    product.Description,
			"category_id":    product.CategoryID,
			"category_name":  product.CategoryName,
			"discount":       product.Discount,
			"discount_price": product.DiscountPrice,
			"version":        gorm.Expr("version + 1"),
			"updated_at":     product.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	product.Version = expectedVersion + 1
	return nil
}

// SaveDiscounts persists the cached discount fields of a batch of products.
// The discount cache is owned by the recompute engine, so these writes bump
// the version without a compare-and-swap.
func (r *GormProductRepository) SaveDiscounts(ctx context.Context, products []catalog.Product) error {
	db := dbFor(ctx, r.db)
	for i := range products {
		if err := db.
			Model(&catalog.Product{}).
			Where("id = ?", products[i].ID).
			Updates(map[string]interface{}{
				"discount":       products[i].Discount,
				"discount_price": products[i].DiscountPrice,
				"version":        gorm.Expr("version + 1"),
				"updated_at":     products[i].UpdatedAt,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateCategoryName refreshes the denormalized category-name snapshot of
// every product in the category
func (r *GormProductRepository) UpdateCategoryName(ctx context.Context, categoryID uuid.UUID, name string) error {
	return dbFor(ctx, r.db).
		Model(&catalog.Product{}).
		Where("category_id = ?", categoryID).
		Updates(map[string]interface{}{
			"category_name": name,
			"updated_at":    time.Now(),
		}).Error
}

// ClearDiscountsByCategory nulls the cached discount fields of every
// product in the category
func (r *GormProductRepository) ClearDiscountsByCategory(ctx context.Context, categoryID uuid.UUID) error {
	return dbFor(ctx, r.db).
		Model(&catalog.Product{}).
		Where("category_id = ?", categoryID).
		Updates(map[string]interface{}{
			"discount":       nil,
			"discount_price": nil,
			"updated_at":     time.Now(),
		}).Error
}

// ClearDiscountsBySKUSuffix nulls the cached discount fields of every
// product whose SKU ends with the suffix
func (r *GormProductRepository) ClearDiscountsBySKUSuffix(ctx context.Context, suffix string) error {
	return dbFor(ctx, r.db).
		Model(&catalog.Product{}).
		Where("sku LIKE '%' || ?", suffix).
		Updates(map[string]interface{}{
			"discount":       nil,
			"discount_price": nil,
			"updated_at":     time.Now(),
		}).Error
}

// DetachCategory clears the category reference, name snapshot and cached
// discount fields of every product in the category
func (r *GormProductRepository) DetachCategory(ctx context.Context, categoryID uuid.UUID) error {
	return dbFor(ctx, r.db).
		Model(&catalog.Product{}).
		Where("category_id = ?", categoryID).
		Updates(map[string]interface{}{
			"category_id":    nil,
			"category_name":  nil,
			"discount":       nil,
			"discount_price": nil,
			"updated_at":     time.Now(),
		}).Error
}

// applyFilter applies the filter map to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("category_id = ?", categoryID)
	}
	if categoryName, ok := filter.Filters["category_name"]; ok {
		query = query.Where("LOWER(category_name) = LOWER(?)", categoryName)
	}
	return query
}
