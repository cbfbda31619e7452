package cartControllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/auth"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type lineView struct {
	ID        uint           `json:"id"`
	Product   models.Product `json:"product"`
	Quantity  int            `json:"quantity"`
	TotalCost float64        `json:"total_cost"`
}

// View is the cart page payload.
func View(ctx context.Context, db *gorm.DB, userID uint) (gin.H, error) {
	lines, err := Lines(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	views := make([]lineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, lineView{
			ID:        l.ID,
			Product:   l.Product,
			Quantity:  l.Quantity,
			TotalCost: l.TotalCost().InexactFloat64(),
		})
	}
	body := ComputeTotals(lines).JSON()
	body["lines"] = views
	body["totalitem"] = len(lines)
	return body, nil
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		body, err := View(c.Request.Context(), db, userID)
		if err != nil {
			log.Error().Err(err).Uint("user_id", userID).Msg("load cart")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

// GET /user/cart/add?prod_id=
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, productID, ok := cartRequest(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if _, err := Add(ctx, db, userID, productID); err != nil {
			writeCartError(c, err, userID)
			return
		}
		body, err := View(ctx, db, userID)
		if err != nil {
			writeCartError(c, err, userID)
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

// GET /user/cart/plus?prod_id=
func PlusCart(db *gorm.DB) gin.HandlerFunc {
	return adjust(db, Increment)
}

// GET /user/cart/minus?prod_id=
func MinusCart(db *gorm.DB) gin.HandlerFunc {
	return adjust(db, Decrement)
}

func adjust(db *gorm.DB, op func(context.Context, *gorm.DB, uint, uint) (int, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, productID, ok := cartRequest(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		qty, err := op(ctx, db, userID, productID)
		if err != nil {
			writeCartError(c, err, userID)
			return
		}
		lines, err := Lines(ctx, db, userID)
		if err != nil {
			writeCartError(c, err, userID)
			return
		}
		body := ComputeTotals(lines).JSON()
		body["quantity"] = qty
		c.JSON(http.StatusOK, body)
	}
}

// GET /user/cart/remove?prod_id=
func RemoveCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, productID, ok := cartRequest(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if err := Remove(ctx, db, userID, productID); err != nil {
			writeCartError(c, err, userID)
			return
		}
		lines, err := Lines(ctx, db, userID)
		if err != nil {
			writeCartError(c, err, userID)
			return
		}
		c.JSON(http.StatusOK, ComputeTotals(lines).JSON())
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
		body, err := View(c.Request.Context(), db, uint(userID))
		if err != nil {
			writeCartError(c, err, uint(userID))
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

func cartRequest(c *gin.Context) (uint, uint, bool) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, 0, false
	}
	raw := c.Query("prod_id")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prod_id is required"})
		return 0, 0, false
	}
	productID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || productID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prod_id"})
		return 0, 0, false
	}
	return userID, uint(productID), true
}

func writeCartError(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, ErrCartLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
	default:
		log.Error().Err(err).Uint("user_id", userID).Msg("cart operation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}
