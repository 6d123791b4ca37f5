// Package promotion exposes promotion CRUD: strategy and activation
// criteria are accepted and returned as the tagged-union domain types
// directly (comandas/domain/promotion.Strategy/ActivationCriterion already
// round-trip through JSON), scope as an explicit product/category list the
// application layer expands.
package promotion

import (
	"net/http"

	"comandas/api/response"
	"comandas/application/promotionapp"
	"comandas/domain/promotion"
	"comandas/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	promotions *promotionapp.Service
}

func NewController(promotions *promotionapp.Service) *Controller {
	return &Controller{promotions: promotions}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/promotions")
	{
		group.POST("", c.CreatePromotion)
		group.GET("", c.ListActivePromotions)
		group.PUT("/:id", c.EditPromotion)
		group.PUT("/:id/active", c.SetActive)
	}
}

type scopeItemRequest struct {
	ReferenceID   string                 `json:"referenceId" binding:"required"`
	ReferenceKind promotion.ReferenceKind `json:"referenceKind" binding:"required"`
	Role          promotion.Role          `json:"role" binding:"required"`
}

type createPromotionRequest struct {
	Name        string                           `json:"name" binding:"required"`
	Description string                           `json:"description"`
	Priority    int                              `json:"priority"`
	Strategy    promotion.Strategy               `json:"strategy" binding:"required"`
	Criteria    []promotion.ActivationCriterion `json:"criteria"`
	Scope       []scopeItemRequest               `json:"scope" binding:"required"`
}

func (c *Controller) CreatePromotion(ctx *gin.Context) {
	var req createPromotionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	scope := make([]promotionapp.ScopeItemInput, len(req.Scope))
	for i, s := range req.Scope {
		scope[i] = promotionapp.ScopeItemInput{ReferenceID: s.ReferenceID, ReferenceKind: s.ReferenceKind, Role: s.Role}
	}

	view, err := c.promotions.CreatePromotion(ctx.Request.Context(), promotionapp.CreatePromotionInput{
		Name: req.Name, Description: req.Description, Priority: req.Priority,
		Strategy: req.Strategy, Criteria: req.Criteria, Scope: scope,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, view, "promotion created")
}

func (c *Controller) ListActivePromotions(ctx *gin.Context) {
	views, err := c.promotions.ListActivePromotions(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, errors.Wrap(err, errors.CodeInternal, "failed to list promotions"))
		return
	}
	response.HandleSuccess(ctx, views, "promotions retrieved")
}

type editPromotionRequest struct {
	Name        string                           `json:"name" binding:"required"`
	Description string                           `json:"description"`
	Priority    int                              `json:"priority"`
	Strategy    promotion.Strategy               `json:"strategy" binding:"required"`
	Criteria    []promotion.ActivationCriterion `json:"criteria"`
}

func (c *Controller) EditPromotion(ctx *gin.Context) {
	var req editPromotionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	view, err := c.promotions.EditPromotion(ctx.Request.Context(), ctx.Param("id"), promotionapp.EditPromotionInput{
		Name: req.Name, Description: req.Description, Priority: req.Priority,
		Strategy: req.Strategy, Criteria: req.Criteria,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "promotion updated")
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (c *Controller) SetActive(ctx *gin.Context) {
	var req setActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	view, err := c.promotions.SetActive(ctx.Request.Context(), ctx.Param("id"), req.Active)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "promotion state updated")
}
