package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/auth"
	"github.com/junaidrashid-git/skincare-storefront/middleware"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	if d.Limiter != nil {
		authGroup.Use(middleware.RateLimit(d.Limiter))
	}
	{
		authGroup.POST("/register", auth.RegisterHandler(d.DB))
		authGroup.POST("/login", auth.LoginHandler(d.DB, d.Config.JWTSecret))
	}
}
