package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCategoryServiceFixture() (*CategoryService, *MockCategoryRepository, *MockProductRepository, *MockDiscountRuleRepository) {
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	ruleRepo := new(MockDiscountRuleRepository)
	engine := NewDiscountEngine(ruleRepo, productRepo, fakeTxManager{}, 0)
	service := NewCategoryService(categoryRepo, productRepo, engine, fakeTxManager{})
	return service, categoryRepo, productRepo, ruleRepo
}

func TestCategoryServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates category with unique name", func(t *testing.T) {
		service, categoryRepo, productRepo, _ := newCategoryServiceFixture()

		categoryRepo.On("ExistsByName", ctx, "Electronics").Return(false, nil)
		categoryRepo.On("Insert", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)
		productRepo.On("FindPageByCategory", ctx, mock.Anything, 0, DefaultRecomputeBatchSize).
			Return([]catalog.Product{}, nil)

		resp, err := service.Create(ctx, CreateCategoryRequest{Name: "Electronics"})
		require.NoError(t, err)

		assert.Equal(t, "Electronics", resp.Name)
		assert.Equal(t, int64(1), resp.Version)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		service, categoryRepo, _, _ := newCategoryServiceFixture()

		categoryRepo.On("ExistsByName", ctx, "Electronics").Return(true, nil)

		_, err := service.Create(ctx, CreateCategoryRequest{Name: "Electronics"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		categoryRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestCategoryServiceUpdate(t *testing.T) {
	ctx := context.Background()

	newStoredCategory := func(name string, version int64) *catalog.Category {
		category, err := catalog.NewCategory(name)
		require.NoError(t, err)
		category.Version = version
		return category
	}

	t.Run("stale version fails fast without writing", func(t *testing.T) {
		service, categoryRepo, _, _ := newCategoryServiceFixture()

		category := newStoredCategory("Electronics", 4)
		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)

		name := "Appliances"
		_, err := service.Update(ctx, category.ID, UpdateCategoryRequest{Name: &name, Version: 3})
		require.ErrorIs(t, err, shared.ErrStaleVersion)
		categoryRepo.AssertNotCalled(t, "UpdateWithVersion", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rename refreshes the product snapshot without recompute", func(t *testing.T) {
		service, categoryRepo, productRepo, ruleRepo := newCategoryServiceFixture()

		category := newStoredCategory("Electronics", 1)
		name := "Appliances"

		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
		categoryRepo.On("ExistsByName", ctx, "Appliances").Return(false, nil)
		categoryRepo.On("UpdateWithVersion", ctx, category, int64(1)).Return(nil)
		productRepo.On("UpdateCategoryName", ctx, category.ID, "Appliances").Return(nil)

		resp, err := service.Update(ctx, category.ID, UpdateCategoryRequest{Name: &name, Version: 1})
		require.NoError(t, err)

		assert.Equal(t, "Appliances", resp.Name)
		productRepo.AssertExpectations(t)
		ruleRepo.AssertNotCalled(t, "FindFirstByCategoryID", mock.Anything, mock.Anything)
		productRepo.AssertNotCalled(t, "FindPageByCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rename to the same name is a no-op write", func(t *testing.T) {
		service, categoryRepo, productRepo, _ := newCategoryServiceFixture()

		category := newStoredCategory("Electronics", 1)
		name := "Electronics"

		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)

		resp, err := service.Update(ctx, category.ID, UpdateCategoryRequest{Name: &name, Version: 1})
		require.NoError(t, err)

		assert.Equal(t, "Electronics", resp.Name)
		categoryRepo.AssertNotCalled(t, "UpdateWithVersion", mock.Anything, mock.Anything, mock.Anything)
		productRepo.AssertNotCalled(t, "UpdateCategoryName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects rename to an existing name", func(t *testing.T) {
		service, categoryRepo, _, _ := newCategoryServiceFixture()

		category := newStoredCategory("Electronics", 1)
		name := "Appliances"

		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
		categoryRepo.On("ExistsByName", ctx, "Appliances").Return(true, nil)

		_, err := service.Update(ctx, category.ID, UpdateCategoryRequest{Name: &name, Version: 1})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("lost race surfaces as concurrency conflict", func(t *testing.T) {
		service, categoryRepo, _, _ := newCategoryServiceFixture()

		category := newStoredCategory("Electronics", 1)
		name := "Appliances"

		categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
		categoryRepo.On("ExistsByName", ctx, "Appliances").Return(false, nil)
		categoryRepo.On("UpdateWithVersion", ctx, category, int64(1)).Return(shared.ErrConcurrencyConflict)

		_, err := service.Update(ctx, category.ID, UpdateCategoryRequest{Name: &name, Version: 1})
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestCategoryServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes under lock and detaches products without recompute", func(t *testing.T) {
		service, categoryRepo, productRepo, ruleRepo := newCategoryServiceFixture()

		category, err := catalog.NewCategory("Electronics")
		require.NoError(t, err)

		categoryRepo.On("FindByIDForUpdate", ctx, category.ID).Return(category, nil)
		categoryRepo.On("Delete", ctx, category.ID).Return(nil)
		productRepo.On("DetachCategory", ctx, category.ID).Return(nil)

		resp, err := service.Delete(ctx, category.ID)
		require.NoError(t, err)

		assert.Equal(t, "Electronics", resp.Name)
		productRepo.AssertExpectations(t)
		ruleRepo.AssertNotCalled(t, "FindFirstByCategoryID", mock.Anything, mock.Anything)
		productRepo.AssertNotCalled(t, "FindPageByCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing category propagates not found", func(t *testing.T) {
		service, categoryRepo, productRepo, _ := newCategoryServiceFixture()

		id := uuid.New()
		categoryRepo.On("FindByIDForUpdate", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Delete(ctx, id)
		require.ErrorIs(t, err, shared.ErrNotFound)
		categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		productRepo.AssertNotCalled(t, "DetachCategory", mock.Anything, mock.Anything)
	})
}
