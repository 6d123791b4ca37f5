// Package cashjournal exposes cash-drawer egress registration, end-of-day
// closing, and the historical/report read endpoints.
package cashjournal

import (
	"net/http"
	"time"

	"comandas/api/response"
	"comandas/application/cashapp"
	"comandas/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	cash *cashapp.Service
}

func NewController(cash *cashapp.Service) *Controller {
	return &Controller{cash: cash}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/cash")
	{
		group.POST("/egress", c.RegisterEgress)
		group.POST("/close", c.CloseDay)
		group.GET("/journals", c.ListHistoricalJournals)
		group.GET("/report", c.DailyCashReport)
	}
}

type registerEgressRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

func (c *Controller) RegisterEgress(ctx *gin.Context) {
	var req registerEgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	view, err := c.cash.RegisterEgress(ctx.Request.Context(), cashapp.RegisterEgressInput{
		Amount: req.Amount, Description: req.Description,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, view, "cash egress registered")
}

func (c *Controller) CloseDay(ctx *gin.Context) {
	view, err := c.cash.CloseDay(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "day closed")
}

func (c *Controller) ListHistoricalJournals(ctx *gin.Context) {
	from, err := parseDateParam(ctx, "from")
	if err != nil {
		response.HandleError(ctx, err, "from must be an RFC3339 date", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(ctx, "to")
	if err != nil {
		response.HandleError(ctx, err, "to must be an RFC3339 date", http.StatusBadRequest)
		return
	}

	views, err := c.cash.ListHistoricalJournals(ctx.Request.Context(), from, to)
	if err != nil {
		response.HandleAppError(ctx, errors.Wrap(err, errors.CodeInternal, "failed to list journals"))
		return
	}
	response.HandleSuccess(ctx, views, "journals retrieved")
}

func (c *Controller) DailyCashReport(ctx *gin.Context) {
	at := time.Now()
	if raw := ctx.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.HandleError(ctx, err, "at must be an RFC3339 date", http.StatusBadRequest)
			return
		}
		at = parsed
	}

	view, err := c.cash.DailyCashReport(ctx.Request.Context(), at)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "cash report retrieved")
}

func parseDateParam(ctx *gin.Context, name string) (time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
