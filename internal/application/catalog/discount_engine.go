package catalog

import (
	"context"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRecomputeBatchSize is used when the configured batch size is absent
const DefaultRecomputeBatchSize = 500

var oneHundred = decimal.NewFromInt(100)

// DiscountEngine owns the cached discount fields on products. It reads rules
// and writes product rows only; rule and category rows are never touched.
type DiscountEngine struct {
	ruleRepo    catalog.DiscountRuleRepository
	productRepo catalog.ProductRepository
	tx          shared.TransactionManager
	batchSize   int
}

// NewDiscountEngine creates a new DiscountEngine
func NewDiscountEngine(
	ruleRepo catalog.DiscountRuleRepository,
	productRepo catalog.ProductRepository,
	tx shared.TransactionManager,
	batchSize int,
) *DiscountEngine {
	if batchSize <= 0 {
		batchSize = DefaultRecomputeBatchSize
	}
	return &DiscountEngine{
		ruleRepo:    ruleRepo,
		productRepo: productRepo,
		tx:          tx,
		batchSize:   batchSize,
	}
}

// ApplyDiscount resolves the effective discount for one product: the best of
// the category rule (if any) and the best-matching suffix rule (if any),
// where the effective percent is the maximum of the two. A missing rule is
// not an error. The returned price is price x (1 - percent/100) rounded
// half-up to 2 decimals.
func (e *DiscountEngine) ApplyDiscount(
	ctx context.Context,
	categoryID *uuid.UUID,
	sku string,
	price decimal.Decimal,
) (decimal.Decimal, int64, error) {
	var percent int64

	if categoryID != nil {
		rule, err := e.ruleRepo.FindFirstByCategoryID(ctx, *categoryID)
		if err != nil {
			return decimal.Zero, 0, err
		}
		if rule != nil && rule.Percent > percent {
			percent = rule.Percent
		}
	}

	rule, err := e.ruleRepo.FindBestSuffixMatch(ctx, sku)
	if err != nil {
		return decimal.Zero, 0, err
	}
	if rule != nil && rule.Percent > percent {
		percent = rule.Percent
	}

	discounted := price.
		Mul(oneHundred.Sub(decimal.NewFromInt(percent))).
		Div(oneHundred).
		Round(2)

	return discounted, percent, nil
}

// RecomputeForProduct refreshes one product's cached discount fields in
// place. The caller persists the product inside its own unit of work.
func (e *DiscountEngine) RecomputeForProduct(ctx context.Context, product *catalog.Product) error {
	discounted, percent, err := e.ApplyDiscount(ctx, product.CategoryID, product.SKU, product.Price)
	if err != nil {
		return err
	}

	product.SetDiscount(percent, discounted)
	return nil
}

// RecomputeForCategory re-evaluates and persists the cached discount fields
// of every product in the category, one batch at a time. Each batch commits
// in its own transaction, so the recompute as a whole is at-least-once
// rather than all-or-nothing.
func (e *DiscountEngine) RecomputeForCategory(ctx context.Context, categoryID uuid.UUID) error {
	return e.recompute(ctx, func(page int) ([]catalog.Product, error) {
		return e.productRepo.FindPageByCategory(ctx, categoryID, page, e.batchSize)
	})
}

// RecomputeForSKUSuffix re-evaluates and persists the cached discount fields
// of every product whose SKU ends with the suffix. Same batching contract as
// RecomputeForCategory.
func (e *DiscountEngine) RecomputeForSKUSuffix(ctx context.Context, suffix string) error {
	return e.recompute(ctx, func(page int) ([]catalog.Product, error) {
		return e.productRepo.FindPageBySKUSuffix(ctx, suffix, page, e.batchSize)
	})
}

// recompute drains zero-based pages from readPage until an empty page,
// recomputing and saving each batch transactionally.
func (e *DiscountEngine) recompute(ctx context.Context, readPage func(page int) ([]catalog.Product, error)) error {
	for page := 0; ; page++ {
		products, err := readPage(page)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}

		for i := range products {
			if err := e.RecomputeForProduct(ctx, &products[i]); err != nil {
				return err
			}
		}

		err = e.tx.Transaction(ctx, func(txCtx context.Context) error {
			return e.productRepo.SaveDiscounts(txCtx, products)
		})
		if err != nil {
			return err
		}
	}
}
