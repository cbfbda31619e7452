package orderControllers

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

var ErrOrderNotFound = errors.New("order not found")

type orderView struct {
	models.Order
	TotalCost float64 `json:"total_cost"`
}

func views(orders []models.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderView{Order: o, TotalCost: o.TotalCost().InexactFloat64()})
	}
	return out
}

// UserOrders returns every order of userID in insertion order.
func UserOrders(ctx context.Context, db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.WithContext(ctx).
		Preload("Product").Preload("Customer").Preload("Payment").
		Where("user_id = ?", userID).
		Order("id").
		Find(&orders).Error
	return orders, err
}

// SetStatus moves an order to status. Product and quantity are never touched.
func SetStatus(ctx context.Context, db *gorm.DB, orderID uint, status string) (models.OrderStatus, error) {
	s, err := models.ParseOrderStatus(status)
	if err != nil {
		return "", err
	}
	res := db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("status", s)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", ErrOrderNotFound
	}
	return s, nil
}

// GET /user/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		orders, err := UserOrders(c.Request.Context(), db, userID)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": views(orders)})
	}
}

// GET /admin/orders?status=
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.WithContext(c.Request.Context()).
			Preload("Product").Preload("Customer").Preload("Payment").
			Order("id desc")
		if raw := c.Query("status"); raw != "" {
			status, err := models.ParseOrderStatus(raw)
			if err != nil {
				writeOrderError(c, err)
				return
			}
			query = query.Where("status = ?", status)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, views(orders))
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}

// PUT /admin/orders/:id/status
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		var req updateOrderStatusRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}

		status, err := SetStatus(c.Request.Context(), db, uint(id), req.Status)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		log.Info().Uint64("order_id", id).Str("status", string(status)).Msg("order status updated")
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "status": status})
	}
}
