package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	cartControllers "github.com/junaidrashid-git/skincare-storefront/controllers/cart"
	userControllers "github.com/junaidrashid-git/skincare-storefront/controllers/user"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/junaidrashid-git/skincare-storefront/notify"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentAlreadyPaid    = errors.New("payment already paid")
	ErrPaymentAmountMismatch = errors.New("cart total does not match the payment amount")
)

// CompletePaymentInput is what the gateway posts back once the shopper has paid. It is
// always read from the form so the handler acts on the same fields the signature covers.
type CompletePaymentInput struct {
	GatewayOrderID   string `form:"order_id" json:"order_id" binding:"required"`
	GatewayPaymentID string `form:"payment_id" json:"payment_id"`
	CustomerID       uint   `form:"customer_id" json:"customer_id" binding:"required"`
	Status           string `form:"status" json:"status" binding:"required"`
}

func (in CompletePaymentInput) captured() bool {
	s := strings.ToLower(strings.TrimSpace(in.Status))
	return s == models.PaymentStatusPaid || s == "captured"
}

type PaymentResult struct {
	Payment models.Payment
	Orders  []models.Order
}

// CompletePayment turns the payment owner's cart into orders. A status other than
// paid or captured is only recorded on the payment. When the cart no longer adds up to
// the payment amount the status is recorded, the payment stays unpaid and
// ErrPaymentAmountMismatch is returned.
func CompletePayment(ctx context.Context, db *gorm.DB, in CompletePaymentInput) (*PaymentResult, error) {
	var result PaymentResult
	mismatch := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment := &result.Payment
		err := tx.Where("gateway_order_id = ?", in.GatewayOrderID).First(payment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		if err != nil {
			return fmt.Errorf("load payment: %w", err)
		}
		if payment.Paid {
			return ErrPaymentAlreadyPaid
		}

		status := strings.ToLower(strings.TrimSpace(in.Status))
		recordStatus := func() error {
			if err := tx.Model(payment).Updates(map[string]any{
				"gateway_payment_status": status,
				"gateway_payment_id":     in.GatewayPaymentID,
			}).Error; err != nil {
				return fmt.Errorf("record payment status: %w", err)
			}
			payment.GatewayPaymentStatus = status
			payment.GatewayPaymentID = in.GatewayPaymentID
			return nil
		}
		if !in.captured() {
			return recordStatus()
		}

		if _, err := userControllers.OwnedCustomer(ctx, tx, payment.UserID, in.CustomerID); err != nil {
			return err
		}
		lines, err := cartControllers.Lines(ctx, tx, payment.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}
		if total := cartControllers.ComputeTotals(lines).TotalAmount; !total.Equal(payment.Amount) {
			log.Warn().
				Str("gateway_order_id", payment.GatewayOrderID).
				Str("paid", payment.Amount.StringFixed(2)).
				Str("cart", total.StringFixed(2)).
				Msg("cart changed after checkout started")
			mismatch = true
			return recordStatus()
		}

		// The paid = false guard makes a concurrent duplicate callback lose here.
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND paid = ?", payment.ID, false).
			Updates(map[string]any{
				"paid":                   true,
				"gateway_payment_status": status,
				"gateway_payment_id":     in.GatewayPaymentID,
			})
		if res.Error != nil {
			return fmt.Errorf("mark payment paid: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrPaymentAlreadyPaid
		}
		payment.Paid = true
		payment.GatewayPaymentStatus = status
		payment.GatewayPaymentID = in.GatewayPaymentID

		orders := make([]models.Order, 0, len(lines))
		for _, l := range lines {
			orders = append(orders, models.Order{
				UserID:     payment.UserID,
				CustomerID: in.CustomerID,
				ProductID:  l.ProductID,
				Quantity:   l.Quantity,
				Status:     models.OrderStatusPending,
				PaymentID:  payment.ID,
			})
		}
		if err := tx.Create(&orders).Error; err != nil {
			return fmt.Errorf("create orders: %w", err)
		}
		if err := cartControllers.Clear(tx, payment.UserID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if mismatch {
		return nil, ErrPaymentAmountMismatch
	}

	if result.Payment.Paid {
		if err := db.WithContext(ctx).
			Preload("Product").Preload("Customer").Preload("Payment").
			Where("payment_id = ?", result.Payment.ID).
			Order("id").
			Find(&result.Orders).Error; err != nil {
			return nil, fmt.Errorf("reload orders: %w", err)
		}
	}
	return &result, nil
}

// POST /payment/callback
func PaymentCallback(db *gorm.DB, publisher notify.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in CompletePaymentInput
		if err := c.ShouldBindWith(&in, binding.Form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Input", "detail": err.Error()})
			return
		}

		ctx := c.Request.Context()
		result, err := CompletePayment(ctx, db, in)
		if err != nil {
			writeOrderError(c, err)
			return
		}

		logger := log.With().
			Str("gateway_order_id", in.GatewayOrderID).
			Str("status", result.Payment.GatewayPaymentStatus).
			Logger()
		if !result.Payment.Paid {
			logger.Info().Msg("payment not captured")
			c.JSON(http.StatusOK, gin.H{"message": "Payment not completed", "payment": result.Payment})
			return
		}

		logger.Info().Int("orders", len(result.Orders)).Msg("payment completed")
		if publisher != nil {
			if err := publisher.PublishOrders(ctx, result.Orders); err != nil {
				logger.Error().Err(err).Msg("publish placed orders")
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Order placed successfully",
			"payment": result.Payment,
			"orders":  views(result.Orders),
		})
	}
}
