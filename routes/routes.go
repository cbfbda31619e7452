package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/config"
	"github.com/junaidrashid-git/skincare-storefront/database"
	"github.com/junaidrashid-git/skincare-storefront/notify"
	"github.com/junaidrashid-git/skincare-storefront/ratelimit"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps is everything the route groups hand to their controllers.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Limiter   ratelimit.Limiter
	Hub       *notify.Hub
	Publisher notify.Publisher
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.GET("/healthz", func(c *gin.Context) {
		if err := database.Ping(d.DB); err != nil {
			log.Error().Err(err).Msg("health check")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes (rate limited)
	SetupAuthRoutes(r, d)

	// User routes (JWT-protected)
	SetupUserRoutes(r, d)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, d)

	// Gateway callback (signature-protected)
	SetupPaymentRoutes(r, d)
}
