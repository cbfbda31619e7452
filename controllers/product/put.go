package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/junaidrashid-git/skincare-storefront/storage"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UpdateProduct accepts the same fields as CreateProduct, all optional, plus an optional image.
// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		ctx := c.Request.Context()
		var product models.Product
		if err := db.WithContext(ctx).First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Error().Err(err).Uint64("product_id", id).Msg("load product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
			return
		}

		if err := applyProductForm(c, &product, false); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if file, err := c.FormFile("image"); err == nil {
			imageURL, err := storage.SaveProductImage(c, file, uploadsDir)
			if err != nil {
				writeImageError(c, err)
				return
			}
			product.ProductImage = imageURL
		}

		if err := db.WithContext(ctx).Save(&product).Error; err != nil {
			log.Error().Err(err).Uint64("product_id", id).Msg("update product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
