package adminController

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GET /admin/customers?user_id=
func GetCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query, ok := byUser(c, db.WithContext(c.Request.Context()))
		if !ok {
			return
		}
		var customers []models.Customer
		if err := query.Order("id").Find(&customers).Error; err != nil {
			log.Error().Err(err).Msg("list customers")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

// GET /admin/carts?user_id=
func GetCartLines(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query, ok := byUser(c, db.WithContext(c.Request.Context()))
		if !ok {
			return
		}
		var lines []models.CartLine
		if err := query.Preload("Product").Order("user_id, id").Find(&lines).Error; err != nil {
			log.Error().Err(err).Msg("list cart lines")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch carts"})
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// GET /admin/payments?paid=true
func GetPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query, ok := byUser(c, db.WithContext(c.Request.Context()))
		if !ok {
			return
		}
		if raw := c.Query("paid"); raw != "" {
			paid, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "paid must be true or false"})
				return
			}
			query = query.Where("paid = ?", paid)
		}

		var payments []models.Payment
		if err := query.Order("id desc").Find(&payments).Error; err != nil {
			log.Error().Err(err).Msg("list payments")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}

func byUser(c *gin.Context, query *gorm.DB) (*gorm.DB, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return query, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return nil, false
	}
	return query.Where("user_id = ?", id), true
}
