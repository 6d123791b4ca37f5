// Package order exposes the order lifecycle: open, item mutation, manual
// discounts, close/reopen, and the closed-order correction workflow.
package order

import (
	"net/http"

	"comandas/api/response"
	"comandas/application/orderapp"
	"comandas/domain/order"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	orders *orderapp.Service
}

func NewController(orders *orderapp.Service) *Controller {
	return &Controller{orders: orders}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/orders")
	{
		group.POST("", c.OpenOrder)
		group.GET("/:id", c.GetOrder)
		group.GET("/:id/kitchen-slip", c.KitchenSlip)
		group.GET("/:id/receipt", c.CustomerReceipt)
		group.POST("/:id/items", c.AddItem)
		group.PUT("/:id/items/:itemId/quantity", c.ModifyQuantity)
		group.DELETE("/:id/items/:itemId", c.RemoveItem)
		group.POST("/:id/items/:itemId/discount", c.ApplyLineDiscount)
		group.POST("/:id/discount", c.ApplyGlobalDiscount)
		group.POST("/:id/close", c.Close)
		group.POST("/:id/reopen", c.Reopen)
		group.POST("/:id/correct", c.CorrectClosedOrder)
	}
}

type openOrderRequest struct {
	TableID string `json:"tableId" binding:"required"`
}

func (c *Controller) OpenOrder(ctx *gin.Context) {
	var req openOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	view, err := c.orders.OpenOrder(ctx.Request.Context(), req.TableID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, view, "order opened")
}

func (c *Controller) GetOrder(ctx *gin.Context) {
	view, err := c.orders.GetOrder(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "order retrieved")
}

func (c *Controller) KitchenSlip(ctx *gin.Context) {
	view, err := c.orders.KitchenSlip(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "kitchen slip retrieved")
}

func (c *Controller) CustomerReceipt(ctx *gin.Context) {
	view, err := c.orders.CustomerReceipt(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "customer receipt retrieved")
}

type extraRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type addItemRequest struct {
	ProductID       string         `json:"productId" binding:"required"`
	Quantity        int            `json:"quantity" binding:"required"`
	Observation     *string        `json:"observation"`
	RequestedExtras []extraRequest `json:"extras"`
}

func (c *Controller) AddItem(ctx *gin.Context) {
	var req addItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	extras := make([]orderapp.ExtraRequestInput, len(req.RequestedExtras))
	for i, e := range req.RequestedExtras {
		extras[i] = orderapp.ExtraRequestInput{ProductID: e.ProductID}
	}

	view, err := c.orders.AddItem(ctx.Request.Context(), ctx.Param("id"), orderapp.AddItemInput{
		ProductID: req.ProductID, Quantity: req.Quantity, Observation: req.Observation, RequestedExtras: extras,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "item added")
}

type modifyQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (c *Controller) ModifyQuantity(ctx *gin.Context) {
	var req modifyQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	view, err := c.orders.ModifyQuantity(ctx.Request.Context(), ctx.Param("id"), ctx.Param("itemId"), req.Quantity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "item quantity updated")
}

func (c *Controller) RemoveItem(ctx *gin.Context) {
	view, err := c.orders.RemoveItem(ctx.Request.Context(), ctx.Param("id"), ctx.Param("itemId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "item removed")
}

type manualDiscountRequest struct {
	Kind   order.DiscountKind `json:"kind" binding:"required"`
	Value  string             `json:"value" binding:"required"`
	Reason string             `json:"reason"`
	UserID string             `json:"userId"`
}

func (c *Controller) ApplyLineDiscount(ctx *gin.Context) {
	var req manualDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	view, err := c.orders.ApplyLineDiscount(ctx.Request.Context(), ctx.Param("id"), ctx.Param("itemId"), orderapp.ManualDiscountInput{
		Kind: req.Kind, Value: req.Value, Reason: req.Reason, UserID: req.UserID,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "line discount applied")
}

func (c *Controller) ApplyGlobalDiscount(ctx *gin.Context) {
	var req manualDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	view, err := c.orders.ApplyGlobalDiscount(ctx.Request.Context(), ctx.Param("id"), orderapp.ManualDiscountInput{
		Kind: req.Kind, Value: req.Value, Reason: req.Reason, UserID: req.UserID,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "global discount applied")
}

type paymentRequest struct {
	Medium order.PaymentMedium `json:"medium" binding:"required"`
	Amount string              `json:"amount" binding:"required"`
}

type closeOrderRequest struct {
	Payments []paymentRequest `json:"payments" binding:"required"`
}

func toPaymentInputs(payments []paymentRequest) []orderapp.PaymentInput {
	out := make([]orderapp.PaymentInput, len(payments))
	for i, p := range payments {
		out[i] = orderapp.PaymentInput{Medium: p.Medium, Amount: p.Amount}
	}
	return out
}

func (c *Controller) Close(ctx *gin.Context) {
	var req closeOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	view, err := c.orders.Close(ctx.Request.Context(), ctx.Param("id"), toPaymentInputs(req.Payments))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "order closed")
}

func (c *Controller) Reopen(ctx *gin.Context) {
	view, err := c.orders.Reopen(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "order reopened")
}

type correctClosedOrderRequest struct {
	ItemID      string           `json:"itemId"`
	NewQuantity *int             `json:"newQuantity"`
	Payments    []paymentRequest `json:"payments" binding:"required"`
}

func (c *Controller) CorrectClosedOrder(ctx *gin.Context) {
	var req correctClosedOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	view, err := c.orders.CorrectClosedOrder(ctx.Request.Context(), ctx.Param("id"), orderapp.CorrectClosedOrderInput{
		ItemID: req.ItemID, NewQuantity: req.NewQuantity, Payments: toPaymentInputs(req.Payments),
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "closed order corrected")
}
