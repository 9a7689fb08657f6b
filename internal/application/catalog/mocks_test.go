package catalog

import (
	"context"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fakeTxManager runs the callback directly on the given context
type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindPageByCategory(ctx context.Context, categoryID uuid.UUID, page, pageSize int) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, page, pageSize)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindPageBySKUSuffix(ctx context.Context, suffix string, page, pageSize int) ([]catalog.Product, error) {
	args := m.Called(ctx, suffix, page, pageSize)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Insert(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateWithVersion(ctx context.Context, product *catalog.Product, expectedVersion int64) error {
	args := m.Called(ctx, product, expectedVersion)
	return args.Error(0)
}

func (m *MockProductRepository) SaveDiscounts(ctx context.Context, products []catalog.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateCategoryName(ctx context.Context, categoryID uuid.UUID, name string) error {
	args := m.Called(ctx, categoryID, name)
	return args.Error(0)
}

func (m *MockProductRepository) ClearDiscountsByCategory(ctx context.Context, categoryID uuid.UUID) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockProductRepository) ClearDiscountsBySKUSuffix(ctx context.Context, suffix string) error {
	args := m.Called(ctx, suffix)
	return args.Error(0)
}

func (m *MockProductRepository) DetachCategory(ctx context.Context, categoryID uuid.UUID) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Insert(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateWithVersion(ctx context.Context, category *catalog.Category, expectedVersion int64) error {
	args := m.Called(ctx, category, expectedVersion)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDiscountRuleRepository is a mock implementation of DiscountRuleRepository
type MockDiscountRuleRepository struct {
	mock.Mock
}

func (m *MockDiscountRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.DiscountRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.DiscountRule), args.Error(1)
}

func (m *MockDiscountRuleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.DiscountRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.DiscountRule), args.Error(1)
}

func (m *MockDiscountRuleRepository) FindFirstByCategoryID(ctx context.Context, categoryID uuid.UUID) (*catalog.DiscountRule, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.DiscountRule), args.Error(1)
}

func (m *MockDiscountRuleRepository) FindBestSuffixMatch(ctx context.Context, sku string) (*catalog.DiscountRule, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.DiscountRule), args.Error(1)
}

func (m *MockDiscountRuleRepository) FindAll(ctx context.Context, page, pageSize int) ([]catalog.DiscountRule, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]catalog.DiscountRule), args.Error(1)
}

func (m *MockDiscountRuleRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDiscountRuleRepository) Insert(ctx context.Context, rule *catalog.DiscountRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockDiscountRuleRepository) UpdateWithVersion(ctx context.Context, rule *catalog.DiscountRule, expectedVersion int64) error {
	args := m.Called(ctx, rule, expectedVersion)
	return args.Error(0)
}

func (m *MockDiscountRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
