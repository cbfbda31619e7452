package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/auth"
	cartControllers "github.com/junaidrashid-git/skincare-storefront/controllers/cart"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GET /user/categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := CategorySummaries(c.Request.Context(), db)
		if err != nil {
			log.Error().Err(err).Msg("list categories")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		respond(c, db, gin.H{"categories": summaries, "states": models.States})
	}
}

// GET /user/category/:code
func GetByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := models.CategoryCode(c.Param("code"))
		products, titles, err := ByCategory(c.Request.Context(), db, code)
		if err != nil {
			log.Error().Err(err).Str("category", string(code)).Msg("list category")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		respond(c, db, gin.H{
			"category": code,
			"label":    code.Label(),
			"products": products,
			"titles":   titles,
		})
	}
}

// GET /user/category-title/:title
func GetByTitle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := c.Param("title")
		products, titles, err := ByTitle(c.Request.Context(), db, title)
		if errors.Is(err, ErrNoProducts) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No products with that title"})
			return
		}
		if err != nil {
			log.Error().Err(err).Str("title", title).Msg("list by title")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		respond(c, db, gin.H{
			"category": products[0].Category,
			"products": products,
			"titles":   titles,
		})
	}
}

// respond adds the cart badge for the caller and writes 200.
func respond(c *gin.Context, db *gorm.DB, body gin.H) {
	var total int64
	if userID, ok := auth.UserID(c); ok {
		n, err := cartControllers.Count(c.Request.Context(), db, userID)
		if err != nil {
			log.Warn().Err(err).Uint("user_id", userID).Msg("count cart lines")
		}
		total = n
	}
	body["totalitem"] = total
	c.JSON(http.StatusOK, body)
}
