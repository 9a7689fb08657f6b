package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductServiceFixture() (*ProductService, *MockProductRepository, *MockCategoryRepository, *MockDiscountRuleRepository) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	ruleRepo := new(MockDiscountRuleRepository)
	engine := NewDiscountEngine(ruleRepo, productRepo, fakeTxManager{}, 0)
	service := NewProductService(productRepo, categoryRepo, engine, fakeTxManager{})
	return service, productRepo, categoryRepo, ruleRepo
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with computed discount cache", func(t *testing.T) {
		service, productRepo, categoryRepo, ruleRepo := newProductServiceFixture()

		category, err := catalog.NewCategory("Electronics")
		require.NoError(t, err)
		rule, err := catalog.NewCategoryRule(category.ID, 15)
		require.NoError(t, err)

		productRepo.On("ExistsBySKU", ctx, "SKU0001").Return(false, nil)
		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
		ruleRepo.On("FindFirstByCategoryID", ctx, category.ID).Return(rule, nil)
		ruleRepo.On("FindBestSuffixMatch", ctx, "SKU0001").Return(nil, nil)
		productRepo.On("Insert", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:         "SKU0001",
			Price:       decimalPtr(decimal.NewFromInt(100)),
			Description: "A product",
			CategoryID:  &category.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, "SKU0001", resp.SKU)
		assert.Equal(t, int64(15), resp.Discount)
		assert.Equal(t, "85.00", resp.DiscountPrice.StringFixed(2))
		require.NotNil(t, resp.CategoryName)
		assert.Equal(t, "Electronics", *resp.CategoryName)
		assert.Equal(t, int64(1), resp.Version)
	})

	t.Run("rejects duplicate sku", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()

		productRepo.On("ExistsBySKU", ctx, "SKU0001").Return(true, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			SKU:         "SKU0001",
			Price:       decimalPtr(decimal.NewFromInt(100)),
			Description: "A product",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		productRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("fails when the category does not exist", func(t *testing.T) {
		service, productRepo, categoryRepo, _ := newProductServiceFixture()

		categoryID := uuid.New()
		productRepo.On("ExistsBySKU", ctx, "SKU0001").Return(false, nil)
		categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateProductRequest{
			SKU:         "SKU0001",
			Price:       decimalPtr(decimal.NewFromInt(100)),
			Description: "A product",
			CategoryID:  &categoryID,
		})
		require.ErrorIs(t, err, shared.ErrNotFound)
		productRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()

	newStoredProduct := func(version int64) *catalog.Product {
		product, err := catalog.NewProduct("SKU0001", decimal.NewFromInt(100), "A product")
		require.NoError(t, err)
		product.Version = version
		return product
	}

	t.Run("stale version fails fast without writing", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()

		product := newStoredProduct(3)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.Update(ctx, product.ID, UpdateProductRequest{
			Price:       decimalPtr(decimal.NewFromInt(120)),
			Description: "A product",
			Version:     2,
		})
		require.ErrorIs(t, err, shared.ErrStaleVersion)
		productRepo.AssertNotCalled(t, "UpdateWithVersion", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race surfaces as concurrency conflict", func(t *testing.T) {
		service, productRepo, _, ruleRepo := newProductServiceFixture()

		product := newStoredProduct(2)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		ruleRepo.On("FindBestSuffixMatch", ctx, "SKU0001").Return(nil, nil)
		productRepo.On("UpdateWithVersion", ctx, product, int64(2)).Return(shared.ErrConcurrencyConflict)

		_, err := service.Update(ctx, product.ID, UpdateProductRequest{
			Price:       decimalPtr(decimal.NewFromInt(120)),
			Description: "A product",
			Version:     2,
		})
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("price change recomputes the discount cache", func(t *testing.T) {
		service, productRepo, _, ruleRepo := newProductServiceFixture()

		product := newStoredProduct(1)
		rule, err := catalog.NewSKUSuffixRule("01", 10)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		ruleRepo.On("FindBestSuffixMatch", ctx, "SKU0001").Return(rule, nil)
		productRepo.On("UpdateWithVersion", ctx, product, int64(1)).Return(nil)

		resp, err := service.Update(ctx, product.ID, UpdateProductRequest{
			Price:       decimalPtr(decimal.NewFromInt(200)),
			Description: "A product",
			Version:     1,
		})
		require.NoError(t, err)

		assert.Equal(t, "200.00", resp.Price.StringFixed(2))
		assert.Equal(t, int64(10), resp.Discount)
		assert.Equal(t, "180.00", resp.DiscountPrice.StringFixed(2))
	})

	t.Run("unchanged price and category skip the recompute", func(t *testing.T) {
		service, productRepo, _, ruleRepo := newProductServiceFixture()

		product := newStoredProduct(1)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("UpdateWithVersion", ctx, product, int64(1)).Return(nil)

		_, err := service.Update(ctx, product.ID, UpdateProductRequest{
			Price:       decimalPtr(decimal.NewFromInt(100)),
			Description: "New description",
			Version:     1,
		})
		require.NoError(t, err)

		ruleRepo.AssertNotCalled(t, "FindBestSuffixMatch", mock.Anything, mock.Anything)
	})

	t.Run("nil category id detaches and recomputes", func(t *testing.T) {
		service, productRepo, _, ruleRepo := newProductServiceFixture()

		category, err := catalog.NewCategory("Electronics")
		require.NoError(t, err)
		product := newStoredProduct(1)
		product.AssignCategory(category)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		ruleRepo.On("FindBestSuffixMatch", ctx, "SKU0001").Return(nil, nil)
		productRepo.On("UpdateWithVersion", ctx, product, int64(1)).Return(nil)

		resp, err := service.Update(ctx, product.ID, UpdateProductRequest{
			Price:       decimalPtr(decimal.NewFromInt(100)),
			Description: "A product",
			Version:     1,
		})
		require.NoError(t, err)

		assert.Nil(t, resp.CategoryID)
		assert.Nil(t, resp.CategoryName)
		assert.Equal(t, int64(0), resp.Discount)
	})
}

func TestProductServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()

		productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 2 && f.PageSize == 5
		})).Return([]catalog.Product{}, nil)
		productRepo.On("Count", ctx, mock.Anything).Return(int64(10), nil)

		products, total, err := service.List(ctx, ProductListFilter{Page: 2, PageSize: 5})
		require.NoError(t, err)

		assert.Empty(t, products)
		assert.Equal(t, int64(10), total)
	})

	t.Run("category filters flow into the repository filter", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()

		categoryID := uuid.New()
		productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["category_id"] == categoryID &&
				f.Filters["category_name"] == "Electronics" &&
				f.OrderBy == "price desc, id asc"
		})).Return([]catalog.Product{}, nil)
		productRepo.On("Count", ctx, mock.Anything).Return(int64(0), nil)

		_, _, err := service.List(ctx, ProductListFilter{
			CategoryID:   &categoryID,
			CategoryName: "Electronics",
			Sort:         "-price",
		})
		require.NoError(t, err)
		productRepo.AssertExpectations(t)
	})
}

func TestProductServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the deleted product", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()

		product, err := catalog.NewProduct("SKU0001", decimal.NewFromInt(100), "A product")
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Delete", ctx, product.ID).Return(nil)

		resp, err := service.Delete(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "SKU0001", resp.SKU)
	})

	t.Run("missing product propagates not found", func(t *testing.T) {
		service, productRepo, _, _ := newProductServiceFixture()

		id := uuid.New()
		productRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Delete(ctx, id)
		require.ErrorIs(t, err, shared.ErrNotFound)
		productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
