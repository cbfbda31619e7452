package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var errProductOrdered = errors.New("product has orders")

// DeleteProduct removes a product and any cart lines holding it. Products that
// appear on orders are kept.
// DELETE /admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var product models.Product
			if err := tx.First(&product, id).Error; err != nil {
				return err
			}
			var ordered int64
			if err := tx.Model(&models.Order{}).Where("product_id = ?", id).Count(&ordered).Error; err != nil {
				return err
			}
			if ordered > 0 {
				return errProductOrdered
			}
			if err := tx.Where("product_id = ?", id).Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, errProductOrdered):
			c.JSON(http.StatusConflict, gin.H{"error": "Product has orders and cannot be deleted"})
		case err != nil:
			log.Error().Err(err).Uint64("product_id", id).Msg("delete product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
		}
	}
}
