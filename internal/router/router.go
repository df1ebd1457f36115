package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psmolich79/healthy-meal/internal/api"
	"github.com/psmolich79/healthy-meal/internal/middleware"
	"github.com/psmolich79/healthy-meal/internal/service"
)

// Handlers bundles the API handlers mounted by SetupRouter.
type Handlers struct {
	Auth    *api.AuthHandler
	Profile *api.ProfileHandler
	Recipe  *api.RecipeHandler
	Usage   *api.UsageHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, authService service.IAuthService, authLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes, throttled per client IP
	var limiter gin.HandlerFunc
	if authLimiter != nil {
		limiter = authLimiter.ByClientIP()
	}
	h.Auth.RegisterRoutes(v1, limiter)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		h.Profile.RegisterRoutes(protected)
		h.Recipe.RegisterRoutes(protected)
		h.Usage.RegisterRoutes(protected)
	}

	return router
}
