// Package table exposes the restaurant floor's table roster: registering a
// new table and listing the current ones, open/free state included.
package table

import (
	"net/http"

	"comandas/api/response"
	tableapp "comandas/application/tableapp"
	"comandas/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	tables *tableapp.Service
}

func NewController(tables *tableapp.Service) *Controller {
	return &Controller{tables: tables}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/tables")
	{
		group.POST("", c.RegisterTable)
		group.GET("", c.ListTables)
	}
}

type registerTableRequest struct {
	Number int `json:"number" binding:"required"`
}

func (c *Controller) RegisterTable(ctx *gin.Context) {
	var req registerTableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	view, err := c.tables.RegisterTable(ctx.Request.Context(), tableapp.RegisterTableInput{Number: req.Number})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, view, "table registered")
}

func (c *Controller) ListTables(ctx *gin.Context) {
	views, err := c.tables.ListTables(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, errors.Wrap(err, errors.CodeInternal, "failed to list tables"))
		return
	}
	response.HandleSuccess(ctx, views, "tables retrieved")
}
