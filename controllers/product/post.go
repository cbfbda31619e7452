package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/junaidrashid-git/skincare-storefront/storage"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateProduct creates a product from a multipart form with an "image" file.
// POST /admin/products
func CreateProduct(db *gorm.DB, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := applyProductForm(c, &product, true); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		imageURL, err := storage.SaveProductImage(c, file, uploadsDir)
		if err != nil {
			writeImageError(c, err)
			return
		}
		product.ProductImage = imageURL

		if err := db.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
			log.Error().Err(err).Str("title", product.Title).Msg("create product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
