package ctxutil

import (
	"context"

	"comandas/api/response"
	"comandas/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the gin request's context with the request id
// (assigned by middleware.RequestIDMiddleware) attached, so it survives
// past the HTTP layer into repository/application logging.
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
