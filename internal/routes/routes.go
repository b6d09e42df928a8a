package routes

import (
	"github.com/BradenHooton/reviewhub/internal/auth"
	"github.com/BradenHooton/reviewhub/internal/handlers"
	"github.com/BradenHooton/reviewhub/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	reviewHandler *handlers.ReviewHandler,
	tokenValidator auth.TokenValidator,
	loginLimit middleware.RateLimitConfig,
) {
	// Public routes - no authentication required
	authHandler.RegisterRoutes(router, middleware.RateLimitByIP(loginLimit))

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(tokenValidator))

		userHandler.RegisterRoutes(r)
		reviewHandler.RegisterRoutes(r)
	})
}
