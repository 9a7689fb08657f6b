package persistence

import (
	"context"
	"errors"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDiscountRuleRepository implements DiscountRuleRepository using GORM
type GormDiscountRuleRepository struct {
	db *gorm.DB
}

// NewGormDiscountRuleRepository creates a new GormDiscountRuleRepository
func NewGormDiscountRuleRepository(db *gorm.DB) *GormDiscountRuleRepository {
	return &GormDiscountRuleRepository{db: db}
}

// FindByID finds a rule by its ID
func (r *GormDiscountRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.DiscountRule, error) {
	var rule catalog.DiscountRule
	if err := dbFor(ctx, r.db).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindByIDForUpdate finds a rule by ID holding an exclusive row lock
func (r *GormDiscountRuleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.DiscountRule, error) {
	var rule catalog.DiscountRule
	if err := dbFor(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindFirstByCategoryID returns the category rule for the given category.
// A missing rule is nil, not an error.
func (r *GormDiscountRuleRepository) FindFirstByCategoryID(ctx context.Context, categoryID uuid.UUID) (*catalog.DiscountRule, error) {
	var rule catalog.DiscountRule
	err := dbFor(ctx, r.db).
		Where("scope = ? AND category_id = ?", catalog.ScopeCategory, categoryID).
		Order("id ASC").
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// FindBestSuffixMatch returns the suffix rule matching the end of the SKU.
// The longest suffix wins; equal lengths tie-break on the lowest rule ID.
// A missing rule is nil, not an error.
func (r *GormDiscountRuleRepository) FindBestSuffixMatch(ctx context.Context, sku string) (*catalog.DiscountRule, error) {
	var rule catalog.DiscountRule
	err := dbFor(ctx, r.db).
		Where("scope = ? AND ? LIKE '%' || sku_suffix", catalog.ScopeSKUSuffix, sku).
		Order("length(sku_suffix) DESC, id ASC").
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// FindAll returns one zero-based page of rules ordered by creation time
func (r *GormDiscountRuleRepository) FindAll(ctx context.Context, page, pageSize int) ([]catalog.DiscountRule, error) {
	var rules []catalog.DiscountRule
	if err := dbFor(ctx, r.db).
		Order("created_at ASC, id ASC").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Count counts all rules
func (r *GormDiscountRuleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := dbFor(ctx, r.db).Model(&catalog.DiscountRule{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Insert creates a new rule
func (r *GormDiscountRuleRepository) Insert(ctx context.Context, rule *catalog.DiscountRule) error {
	return dbFor(ctx, r.db).Create(rule).Error
}

// UpdateWithVersion saves the rule with a compare-and-swap on the version
// column. The store bumps the version in the same statement.
func (r *GormDiscountRuleRepository) UpdateWithVersion(ctx context.Context, rule *catalog.DiscountRule, expectedVersion int64) error {
	result := dbFor(ctx, r.db).
		Model(rule).
		Where("id = ? AND version = ?", rule.ID, expectedVersion).
		Updates(map[string]interface{}{
			"scope":       rule.Scope,
			"category_id": rule.CategoryID,
			"sku_suffix":  rule.SKUSuffix,
			"percent":     rule.Percent,
			"version":     gorm.Expr("version + 1"),
			"updated_at":  rule.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	rule.Version = expectedVersion + 1
	return nil
}

// Delete removes a rule
func (r *GormDiscountRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&catalog.DiscountRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
