package api

import (
	"comandas/config"

	"github.com/gin-gonic/gin"
)

// ControllerRegister is implemented by every resource controller that wants
// its routes mounted under /api/v1.
type ControllerRegister interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// MiddlewareRegister is a gin middleware the builder wants applied
// globally, ahead of route dispatch.
type MiddlewareRegister = gin.HandlerFunc

// Route is a one-off handler registered outside the controller set (a docs
// redirect, an admin probe, and the like).
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Router assembles the gin engine from a builder-supplied controller,
// middleware, and custom-route set.
type Router struct {
	engine       *gin.Engine
	config       *config.Config
	controllers  []ControllerRegister
	customRoutes []Route
}

func NewRouter(cfg *config.Config, controllers []ControllerRegister, middlewares []MiddlewareRegister, customRoutes []Route) *Router {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.IsDevelopment():
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	for _, m := range middlewares {
		engine.Use(m)
	}

	return &Router{
		engine:       engine,
		config:       cfg,
		controllers:  controllers,
		customRoutes: customRoutes,
	}
}

// SetupRoutes mounts every controller under /api/v1 and any custom routes
// at the path they name.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	for _, c := range r.controllers {
		c.RegisterRoutes(apiGroup)
	}

	for _, route := range r.customRoutes {
		r.engine.Handle(route.Method, route.Path, route.Handler)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
