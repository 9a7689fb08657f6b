package handler

import (
	catalogapp "github.com/catalog/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DiscountRuleHandler handles discount rule API endpoints
type DiscountRuleHandler struct {
	BaseHandler
	ruleService *catalogapp.DiscountRuleService
}

// NewDiscountRuleHandler creates a new DiscountRuleHandler
func NewDiscountRuleHandler(ruleService *catalogapp.DiscountRuleService) *DiscountRuleHandler {
	return &DiscountRuleHandler{
		ruleService: ruleService,
	}
}

// RegisterRoutes registers discount rule routes
func (h *DiscountRuleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rules := rg.Group("/catalog/discount-rules")
	{
		rules.POST("", h.Create)
		rules.GET("", h.List)
		rules.GET("/:id", h.GetByID)
		rules.PUT("/:id", h.Update)
		rules.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary      Create a discount rule
// @Description  Create a category or SKU suffix rule. Cached discounts of the affected products are recomputed.
// @Tags         discount-rules
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateDiscountRuleRequest true "Discount rule creation request"
// @Success      201 {object} dto.Response{data=catalogapp.DiscountRuleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/discount-rules [post]
func (h *DiscountRuleHandler) Create(c *gin.Context) {
	var req catalogapp.CreateDiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rule, err := h.ruleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, rule)
}

// GetByID godoc
// @Summary      Get discount rule by ID
// @Tags         discount-rules
// @Produce      json
// @Param        id path string true "Rule ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.DiscountRuleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/discount-rules/{id} [get]
func (h *DiscountRuleHandler) GetByID(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	rule, err := h.ruleService.GetByID(c.Request.Context(), ruleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rule)
}

// List godoc
// @Summary      List discount rules
// @Description  Retrieve a paginated list of rules ordered by creation time. Pages are zero-based.
// @Tags         discount-rules
// @Produce      json
// @Param        page query int false "Page number (zero-based)" default(0)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.DiscountRuleResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/discount-rules [get]
func (h *DiscountRuleHandler) List(c *gin.Context) {
	var filter catalogapp.DiscountRuleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	rules, total, err := h.ruleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, rules, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a discount rule
// @Description  Change the percent or retarget the rule. Cached discounts of the rule's current target are recomputed. The request carries the last observed version.
// @Tags         discount-rules
// @Accept       json
// @Produce      json
// @Param        id path string true "Rule ID" format(uuid)
// @Param        request body catalogapp.UpdateDiscountRuleRequest true "Discount rule update request"
// @Success      200 {object} dto.Response{data=catalogapp.DiscountRuleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      412 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/discount-rules/{id} [put]
func (h *DiscountRuleHandler) Update(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	var req catalogapp.UpdateDiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rule, err := h.ruleService.Update(c.Request.Context(), ruleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rule)
}

// Delete godoc
// @Summary      Delete a discount rule
// @Description  Delete a rule and clear the cached discounts it produced. No recompute runs on delete.
// @Tags         discount-rules
// @Produce      json
// @Param        id path string true "Rule ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.DiscountRuleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/discount-rules/{id} [delete]
func (h *DiscountRuleHandler) Delete(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	rule, err := h.ruleService.Delete(c.Request.Context(), ruleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rule)
}
