// Package catalog exposes the menu: categories and products, including
// activation toggles and deletion (rows are removed, not flagged).
package catalog

import (
	"net/http"

	"comandas/api/response"
	"comandas/application/catalogapp"
	"comandas/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Controller struct {
	categories *catalogapp.CategoryService
	products   *catalogapp.ProductService
}

func NewController(categories *catalogapp.CategoryService, products *catalogapp.ProductService) *Controller {
	return &Controller{categories: categories, products: products}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.POST("", c.CreateCategory)
		categories.GET("", c.ListCategories)
		categories.DELETE("/:id", c.DeleteCategory)
	}

	products := router.Group("/products")
	{
		products.POST("", c.CreateProduct)
		products.GET("", c.ListProducts)
		products.GET("/:id", c.GetProduct)
		products.PUT("/:id", c.UpdateProduct)
		products.PUT("/:id/active", c.SetProductActive)
		products.DELETE("/:id", c.DeleteProduct)
	}
}

type createCategoryRequest struct {
	Name               string  `json:"name" binding:"required"`
	Color              string  `json:"color"`
	AdmitsVariants     bool    `json:"admitsVariants"`
	IsExtraCategory    bool    `json:"isExtraCategory"`
	Ordering           int     `json:"ordering"`
	ModifierCategoryID *string `json:"modifierCategoryId"`
}

func (c *Controller) CreateCategory(ctx *gin.Context) {
	var req createCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	view, err := c.categories.CreateCategory(ctx.Request.Context(), catalogapp.CreateCategoryInput{
		Name: req.Name, Color: req.Color, AdmitsVariants: req.AdmitsVariants,
		IsExtraCategory: req.IsExtraCategory, Ordering: req.Ordering, ModifierCategoryID: req.ModifierCategoryID,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, view, "category created")
}

func (c *Controller) ListCategories(ctx *gin.Context) {
	views, err := c.categories.ListCategories(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, errors.Wrap(err, errors.CodeInternal, "failed to list categories"))
		return
	}
	response.HandleSuccess(ctx, views, "categories retrieved")
}

func (c *Controller) DeleteCategory(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.categories.DeleteCategory(ctx.Request.Context(), id); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

type createProductRequest struct {
	Name                    string  `json:"name" binding:"required"`
	Price                   string  `json:"price" binding:"required"`
	Color                   string  `json:"color"`
	CategoryID              *string `json:"categoryId"`
	VariantGroupID          *string `json:"variantGroupId"`
	StructuralModifierCount *int    `json:"structuralModifierCount"`
	IsExtra                 bool    `json:"isExtra"`
	IsStructuralModifier    bool    `json:"isStructuralModifier"`
	AdmitsExtras            bool    `json:"admitsExtras"`
	RequiresConfiguration   bool    `json:"requiresConfiguration"`
	StockTracked            bool    `json:"stockTracked"`
}

func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req createProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.HandleError(ctx, err, "price must be a decimal number", http.StatusBadRequest)
		return
	}

	view, err := c.products.CreateProduct(ctx.Request.Context(), catalogapp.CreateProductInput{
		Name: req.Name, Price: price, Color: req.Color, CategoryID: req.CategoryID,
		VariantGroupID: req.VariantGroupID, StructuralModifierCount: req.StructuralModifierCount,
		IsExtra: req.IsExtra, IsStructuralModifier: req.IsStructuralModifier,
		AdmitsExtras: req.AdmitsExtras, RequiresConfiguration: req.RequiresConfiguration,
		StockTracked: req.StockTracked,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, view, "product created")
}

func (c *Controller) GetProduct(ctx *gin.Context) {
	view, err := c.products.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "product retrieved")
}

func (c *Controller) ListProducts(ctx *gin.Context) {
	views, err := c.products.ListProducts(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, errors.Wrap(err, errors.CodeInternal, "failed to list products"))
		return
	}
	response.HandleSuccess(ctx, views, "products retrieved")
}

type updateProductRequest struct {
	Name  *string `json:"name"`
	Price *string `json:"price"`
}

func (c *Controller) UpdateProduct(ctx *gin.Context) {
	var req updateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	in := catalogapp.UpdateProductInput{Name: req.Name}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			response.HandleError(ctx, err, "price must be a decimal number", http.StatusBadRequest)
			return
		}
		in.Price = &price
	}

	view, err := c.products.UpdateProduct(ctx.Request.Context(), ctx.Param("id"), in)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "product updated")
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (c *Controller) SetProductActive(ctx *gin.Context) {
	var req setActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	view, err := c.products.SetActive(ctx.Request.Context(), ctx.Param("id"), req.Active)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "product state updated")
}

func (c *Controller) DeleteProduct(ctx *gin.Context) {
	if err := c.products.DeleteProduct(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
