package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/skincare-storefront/controllers/order"
	"github.com/junaidrashid-git/skincare-storefront/middleware"
)

// SetupPaymentRoutes registers the gateway callback. The middleware handles
// sandbox/live signature verification.
func SetupPaymentRoutes(r *gin.Engine, d Deps) {
	payment := r.Group("/payment")
	{
		payment.POST("/callback",
			middleware.PaymentWebhookAuth(d.Config.PaymentWebhookSecret, d.Config.PaymentSandbox()),
			orderControllers.PaymentCallback(d.DB, d.Publisher),
		)
	}
}
