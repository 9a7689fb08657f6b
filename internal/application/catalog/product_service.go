package catalog

import (
	"context"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product lifecycle operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	engine       *DiscountEngine
	tx           shared.TransactionManager
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	engine *DiscountEngine,
	tx shared.TransactionManager,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		engine:       engine,
		tx:           tx,
	}
}

// Create creates a new product. The discount cache is computed before the
// insert so the row is born consistent with the current rule set.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var product *catalog.Product

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		exists, err := s.productRepo.ExistsBySKU(txCtx, req.SKU)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}

		product, err = catalog.NewProduct(req.SKU, *req.Price, req.Description)
		if err != nil {
			return err
		}

		if req.CategoryID != nil {
			category, err := s.categoryRepo.FindByID(txCtx, *req.CategoryID)
			if err != nil {
				return err
			}
			product.AssignCategory(category)
		}

		if err := s.engine.RecomputeForProduct(txCtx, product); err != nil {
			return err
		}

		return s.productRepo.Insert(txCtx, product)
	})
	if err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// List retrieves a page of products. Pages are zero-based and a page past
// the end is an empty page, not an error.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = BuildOrderBy(ParseSortSpec(filter.Sort, filter.Order))

	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.CategoryName != "" {
		domainFilter.Filters["category_name"] = filter.CategoryName
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *ToProductResponse(&products[i])
	}

	return responses, total, nil
}

// Update updates a product's price, description and category association.
// The SKU is immutable. The caller supplies the version it last observed;
// a mismatch against the loaded row fails fast with ErrStaleVersion, and a
// lost race on the versioned write surfaces as ErrConcurrencyConflict. The
// discount cache is recomputed when the price or the category association
// changed.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	var product *catalog.Product

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		product, err = s.productRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if product.Version != req.Version {
			return shared.ErrStaleVersion
		}

		priceChanged := !product.Price.Equal(req.Price.Round(2))
		categoryChanged := !sameCategory(product.CategoryID, req.CategoryID)

		if err := product.SetPrice(*req.Price); err != nil {
			return err
		}
		if err := product.SetDescription(req.Description); err != nil {
			return err
		}

		if categoryChanged {
			if req.CategoryID != nil {
				category, err := s.categoryRepo.FindByID(txCtx, *req.CategoryID)
				if err != nil {
					return err
				}
				product.AssignCategory(category)
			} else {
				product.ClearCategory()
			}
		}

		if priceChanged || categoryChanged {
			if err := s.engine.RecomputeForProduct(txCtx, product); err != nil {
				return err
			}
		}

		return s.productRepo.UpdateWithVersion(txCtx, product, req.Version)
	})
	if err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	var product *catalog.Product

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		product, err = s.productRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		return s.productRepo.Delete(txCtx, id)
	})
	if err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// sameCategory compares two optional category references
func sameCategory(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
