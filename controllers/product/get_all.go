package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GET /user/search?search=
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query, ok := c.GetQuery("search")
		query = strings.TrimSpace(query)
		if !ok || query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "search query is required"})
			return
		}

		products, err := Search(c.Request.Context(), db, query)
		if err != nil {
			log.Error().Err(err).Str("query", query).Msg("search products")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
			return
		}
		respond(c, db, gin.H{"query": query, "products": products})
	}
}

var productSortColumns = map[string]string{
	"id":               "id",
	"title":            "title",
	"selling_price":    "selling_price",
	"discounted_price": "discounted_price",
	"created_at":       "created_at",
}

// GetProducts is the admin catalog listing with optional category, title and price filters.
// GET /admin/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.WithContext(c.Request.Context()).Model(&models.Product{})

		if category := c.Query("category"); category != "" {
			if !models.CategoryCode(category).Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			query = query.Where("category = ?", category)
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			query = query.Where("LOWER(title) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(search))+"%")
		}
		if v := c.Query("min_price"); v != "" {
			p, err := decimal.NewFromString(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			query = query.Where("discounted_price >= ?", p)
		}
		if v := c.Query("max_price"); v != "" {
			p, err := decimal.NewFromString(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("discounted_price <= ?", p)
		}

		column, ok := productSortColumns[c.DefaultQuery("sort_by", "id")]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by"})
			return
		}
		order := strings.ToLower(c.DefaultQuery("order", "asc"))
		if order != "asc" && order != "desc" {
			order = "asc"
		}

		var products []models.Product
		if err := query.Order(column + " " + order).Find(&products).Error; err != nil {
			log.Error().Err(err).Msg("list products")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
