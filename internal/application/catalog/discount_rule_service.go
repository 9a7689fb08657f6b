package catalog

import (
	"context"

	"github.com/catalog/backend/internal/domain/catalog"
	"github.com/catalog/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DiscountRuleService handles discount rule lifecycle operations. Every
// create and update synchronously recomputes the rule's current target set
// before returning; deletes clear the affected discount caches without
// recomputing.
type DiscountRuleService struct {
	ruleRepo     catalog.DiscountRuleRepository
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	engine       *DiscountEngine
	tx           shared.TransactionManager
}

// NewDiscountRuleService creates a new DiscountRuleService
func NewDiscountRuleService(
	ruleRepo catalog.DiscountRuleRepository,
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	engine *DiscountEngine,
	tx shared.TransactionManager,
) *DiscountRuleService {
	return &DiscountRuleService{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		engine:       engine,
		tx:           tx,
	}
}

// Create creates a new discount rule and propagates it to the target set
func (s *DiscountRuleService) Create(ctx context.Context, req CreateDiscountRuleRequest) (*DiscountRuleResponse, error) {
	var rule *catalog.DiscountRule

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error

		switch catalog.DiscountScope(req.Scope) {
		case catalog.ScopeCategory:
			if req.CategoryID == nil || req.SKUSuffix != nil {
				return shared.NewDomainError("INVALID_INPUT", "Category rule requires a category ID and no SKU suffix")
			}
			if _, err := s.categoryRepo.FindByID(txCtx, *req.CategoryID); err != nil {
				return err
			}
			rule, err = catalog.NewCategoryRule(*req.CategoryID, *req.Percent)
		case catalog.ScopeSKUSuffix:
			if req.SKUSuffix == nil || req.CategoryID != nil {
				return shared.NewDomainError("INVALID_INPUT", "SKU suffix rule requires a suffix and no category ID")
			}
			rule, err = catalog.NewSKUSuffixRule(*req.SKUSuffix, *req.Percent)
		default:
			return shared.NewDomainError("INVALID_INPUT", "Unknown discount scope")
		}
		if err != nil {
			return err
		}

		return s.ruleRepo.Insert(txCtx, rule)
	})
	if err != nil {
		return nil, err
	}

	if err := s.recomputeTarget(ctx, rule); err != nil {
		return nil, err
	}

	return ToDiscountRuleResponse(rule), nil
}

// GetByID retrieves a rule by ID
func (s *DiscountRuleService) GetByID(ctx context.Context, id uuid.UUID) (*DiscountRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToDiscountRuleResponse(rule), nil
}

// List retrieves a zero-based page of rules
func (s *DiscountRuleService) List(ctx context.Context, filter DiscountRuleListFilter) ([]DiscountRuleResponse, int64, error) {
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	rules, err := s.ruleRepo.FindAll(ctx, filter.Page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.ruleRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DiscountRuleResponse, len(rules))
	for i := range rules {
		responses[i] = *ToDiscountRuleResponse(&rules[i])
	}

	return responses, total, nil
}

// Update changes a rule's percent and/or scope target, then recomputes the
// rule's current target set. Omitted targeting fields merge from the stored
// rule before the scope invariant is re-checked, so a SKU_SUFFIX rule can
// move to a new suffix without restating its scope. The caller supplies the
// version it last observed; a mismatch fails fast with ErrStaleVersion, a
// lost race on the versioned write surfaces as ErrConcurrencyConflict.
// Products only covered by the previous target keep their cached discount
// until the next trigger.
func (s *DiscountRuleService) Update(ctx context.Context, id uuid.UUID, req UpdateDiscountRuleRequest) (*DiscountRuleResponse, error) {
	var rule *catalog.DiscountRule

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		rule, err = s.ruleRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if rule.Version != req.Version {
			return shared.ErrStaleVersion
		}

		if req.Scope != nil || req.CategoryID != nil || req.SKUSuffix != nil {
			scope := rule.Scope
			if req.Scope != nil {
				scope = catalog.DiscountScope(*req.Scope)
			}
			categoryID := rule.CategoryID
			if req.CategoryID != nil {
				categoryID = req.CategoryID
			}
			skuSuffix := rule.SKUSuffix
			if req.SKUSuffix != nil {
				skuSuffix = req.SKUSuffix
			}

			if scope == catalog.ScopeCategory && req.CategoryID != nil {
				if _, err := s.categoryRepo.FindByID(txCtx, *req.CategoryID); err != nil {
					return err
				}
			}
			if err := rule.Retarget(scope, categoryID, skuSuffix); err != nil {
				return err
			}
		}

		if req.Percent != nil {
			if err := rule.SetPercent(*req.Percent); err != nil {
				return err
			}
		}

		return s.ruleRepo.UpdateWithVersion(txCtx, rule, req.Version)
	})
	if err != nil {
		return nil, err
	}

	if err := s.recomputeTarget(ctx, rule); err != nil {
		return nil, err
	}

	return ToDiscountRuleResponse(rule), nil
}

// Delete removes a rule under an exclusive row lock and bulk-clears the
// cached discount fields of its target set. No recompute runs; the caches
// stay cleared until the next trigger.
func (s *DiscountRuleService) Delete(ctx context.Context, id uuid.UUID) (*DiscountRuleResponse, error) {
	var rule *catalog.DiscountRule

	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		rule, err = s.ruleRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.ruleRepo.Delete(txCtx, id); err != nil {
			return err
		}

		switch rule.Scope {
		case catalog.ScopeCategory:
			return s.productRepo.ClearDiscountsByCategory(txCtx, *rule.CategoryID)
		case catalog.ScopeSKUSuffix:
			return s.productRepo.ClearDiscountsBySKUSuffix(txCtx, *rule.SKUSuffix)
		default:
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	return ToDiscountRuleResponse(rule), nil
}

// recomputeTarget propagates a rule to everything it currently matches
func (s *DiscountRuleService) recomputeTarget(ctx context.Context, rule *catalog.DiscountRule) error {
	switch rule.Scope {
	case catalog.ScopeCategory:
		return s.engine.RecomputeForCategory(ctx, *rule.CategoryID)
	case catalog.ScopeSKUSuffix:
		return s.engine.RecomputeForSKUSuffix(ctx, *rule.SKUSuffix)
	default:
		return nil
	}
}
