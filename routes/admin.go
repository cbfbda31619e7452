package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/skincare-storefront/controllers/admin"
	cartControllers "github.com/junaidrashid-git/skincare-storefront/controllers/cart"
	orderControllers "github.com/junaidrashid-git/skincare-storefront/controllers/order"
	productcontroller "github.com/junaidrashid-git/skincare-storefront/controllers/product"
	userControllers "github.com/junaidrashid-git/skincare-storefront/controllers/user"
	"github.com/junaidrashid-git/skincare-storefront/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	db := d.DB
	uploads := d.Config.UploadsDir
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.Config.AdminAPIKey))
	{
		// ─────────── Users & Profiles ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/customers", adminController.GetCustomers(db))
		adminGroup.GET("/payments", adminController.GetPayments(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db, uploads))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db, uploads))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Carts ───────────
		adminGroup.GET("/carts", adminController.GetCartLines(db))
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrders(db))
			orderAdmin.PUT("/:id/status", orderControllers.UpdateOrderStatus(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
			if d.Hub != nil {
				orderAdmin.GET("/ws", d.Hub.ServeWS)
			}
		}
	}
}
