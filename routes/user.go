package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/auth"
	cartControllers "github.com/junaidrashid-git/skincare-storefront/controllers/cart"
	orderControllers "github.com/junaidrashid-git/skincare-storefront/controllers/order"
	productControllers "github.com/junaidrashid-git/skincare-storefront/controllers/product"
	userControllers "github.com/junaidrashid-git/skincare-storefront/controllers/user"
	"github.com/junaidrashid-git/skincare-storefront/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	db := d.DB
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(d.Config.JWTSecret))
	{
		// ──────────────── Account ────────────────
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.PUT("/password", auth.ChangePasswordHandler(db))

		// ──────────────── Profile & Addresses ────────────────
		userGroup.POST("/profile", userControllers.CreateProfileHandler(db))
		userGroup.GET("/address", userControllers.GetAddresses(db))
		userGroup.GET("/address/:id", userControllers.GetAddress(db))
		userGroup.PUT("/address/:id", userControllers.UpdateAddressHandler(db))
		userGroup.POST("/address/:id", userControllers.UpdateAddressHandler(db))

		// ──────────────── Browse Products ────────────────
		userGroup.GET("/categories", productControllers.GetCategories(db))
		userGroup.GET("/category/:code", productControllers.GetByCategory(db))
		userGroup.GET("/category-title/:title", productControllers.GetByTitle(db))
		userGroup.GET("/products/:id", productControllers.GetProductByID(db))
		userGroup.GET("/search", productControllers.SearchProducts(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))
			cartGroup.GET("/add", cartControllers.AddToCart(db))
			cartGroup.GET("/plus", cartControllers.PlusCart(db))
			cartGroup.GET("/minus", cartControllers.MinusCart(db))
			cartGroup.GET("/remove", cartControllers.RemoveCart(db))
		}

		// ──────────────── Checkout & Orders ────────────────
		userGroup.GET("/checkout", orderControllers.GetCheckout(db))
		userGroup.POST("/checkout", orderControllers.PostCheckout(db))
		userGroup.GET("/orders", orderControllers.GetUserOrders(db))
	}
}
