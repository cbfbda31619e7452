package orderControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/skincare-storefront/auth"
	cartControllers "github.com/junaidrashid-git/skincare-storefront/controllers/cart"
	userControllers "github.com/junaidrashid-git/skincare-storefront/controllers/user"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrCartEmpty = errors.New("cart is empty")

// CheckoutView is the cart payload plus the caller's saved addresses.
func CheckoutView(ctx context.Context, db *gorm.DB, userID uint) (gin.H, error) {
	body, err := cartControllers.View(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	addresses, err := userControllers.Addresses(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	body["addresses"] = addresses
	return body, nil
}

// StartCheckout opens a gateway payment for the current cart total. Nothing is
// ordered until the gateway reports the payment back.
func StartCheckout(ctx context.Context, db *gorm.DB, userID, customerID uint) (*models.Payment, error) {
	lines, err := cartControllers.Lines(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}
	if _, err := userControllers.OwnedCustomer(ctx, db, userID, customerID); err != nil {
		return nil, err
	}

	payment := models.Payment{
		UserID:               userID,
		Amount:               cartControllers.ComputeTotals(lines).TotalAmount,
		GatewayOrderID:       "order_" + uuid.NewString(),
		GatewayPaymentStatus: models.PaymentStatusCreated,
	}
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// GET /user/checkout
func GetCheckout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		body, err := CheckoutView(c.Request.Context(), db, userID)
		if err != nil {
			log.Error().Err(err).Uint("user_id", userID).Msg("checkout view")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checkout"})
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

type startCheckoutRequest struct {
	CustomerID uint `json:"customer_id" form:"customer_id" binding:"required"`
}

// POST /user/checkout
func PostCheckout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req startCheckoutRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id is required"})
			return
		}

		payment, err := StartCheckout(c.Request.Context(), db, userID, req.CustomerID)
		if err != nil {
			writeOrderError(c, err)
			return
		}
		log.Info().Uint("user_id", userID).Str("gateway_order_id", payment.GatewayOrderID).Msg("checkout started")
		c.JSON(http.StatusCreated, gin.H{
			"payment":     payment,
			"customer_id": req.CustomerID,
			"totalamount": payment.Amount.InexactFloat64(),
		})
	}
}

func writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCartEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, userControllers.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
	case errors.Is(err, ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, ErrPaymentAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{"error": "Payment already completed"})
	case errors.Is(err, ErrPaymentAmountMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": "Cart changed after checkout, start checkout again"})
	case errors.Is(err, models.ErrInvalidOrderStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("order operation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
