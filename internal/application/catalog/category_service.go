package catalog

import (
	"context"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles category lifecycle operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	engine       *DiscountEngine
	tx           shared.TransactionManager
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	engine *DiscountEngine,
	tx shared.TransactionManager,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		engine:       engine,
		tx:           tx,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var category *catalog.Category

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		exists, err := s.categoryRepo.ExistsByName(txCtx, req.Name)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
		}

		category, err = catalog.NewCategory(req.Name)
		if err != nil {
			return err
		}

		return s.categoryRepo.Insert(txCtx, category)
	})
	if err != nil {
		return nil, err
	}

	// A fresh category has no products, so this is a no-op today; it keeps
	// the cached fields honest if creation ever gains product attachment.
	if err := s.engine.RecomputeForCategory(ctx, category.ID); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}

	return responses, nil
}

// Update renames a category. The caller supplies the version it last
// observed; a mismatch against the loaded row fails fast with
// ErrStaleVersion before anything is written, and a lost race on the
// versioned write surfaces as ErrConcurrencyConflict. A rename refreshes
// the name snapshot on the category's products but never recomputes
// discounts.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	var category *catalog.Category

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		category, err = s.categoryRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if category.Version != req.Version {
			return shared.ErrStaleVersion
		}

		if req.Name == nil || *req.Name == category.Name {
			return nil
		}

		exists, err := s.categoryRepo.ExistsByName(txCtx, *req.Name)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
		}

		if err := category.Rename(*req.Name); err != nil {
			return err
		}

		if err := s.categoryRepo.UpdateWithVersion(txCtx, category, req.Version); err != nil {
			return err
		}

		return s.productRepo.UpdateCategoryName(txCtx, category.ID, category.Name)
	})
	if err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// Delete removes a category under an exclusive row lock and detaches its
// products: category reference, name snapshot and cached discount fields
// are cleared in bulk. No recompute runs; discounts stay cleared until the
// next trigger.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	var category *catalog.Category

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		category, err = s.categoryRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.categoryRepo.Delete(txCtx, id); err != nil {
			return err
		}

		return s.productRepo.DetachCategory(txCtx, id)
	})
	if err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}
