package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusAccepted  OrderStatus = "Accepted"
	OrderStatusPacked    OrderStatus = "Packed"
	OrderStatusOnTheWay  OrderStatus = "On The Way"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancel    OrderStatus = "Cancel"
	OrderStatusPending   OrderStatus = "Pending"
)

var OrderStatuses = []OrderStatus{
	OrderStatusAccepted,
	OrderStatusPacked,
	OrderStatusOnTheWay,
	OrderStatusDelivered,
	OrderStatusCancel,
	OrderStatusPending,
}

var ErrInvalidOrderStatus = errors.New("invalid order status")

// ParseOrderStatus matches case-insensitively and returns the stored code.
func ParseOrderStatus(status string) (OrderStatus, error) {
	status = strings.TrimSpace(status)
	for _, s := range OrderStatuses {
		if strings.EqualFold(string(s), status) {
			return s, nil
		}
	}
	return "", ErrInvalidOrderStatus
}

// Order is one purchased cart line. Product and quantity never change after creation.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	CustomerID  uint        `gorm:"not null" json:"customer_id"`
	Customer    Customer    `json:"customer"`
	ProductID   uint        `gorm:"not null" json:"product_id"`
	Product     Product     `json:"product"`
	Quantity    int         `gorm:"not null;default:1" json:"quantity"`
	OrderedDate time.Time   `gorm:"autoCreateTime" json:"ordered_date"`
	Status      OrderStatus `gorm:"type:varchar(50);default:'Pending'" json:"status"`
	PaymentID   uint        `gorm:"not null;index" json:"payment_id"`
	Payment     Payment     `json:"payment"`
}

func (o Order) TotalCost() decimal.Decimal {
	return o.Product.DiscountedPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

const (
	PaymentStatusCreated = "created"
	PaymentStatusPaid    = "paid"
)

// Payment tracks one checkout at the gateway. Paid flips to true exactly once.
type Payment struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	UserID               uint            `gorm:"not null;index" json:"user_id"`
	Amount               decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	GatewayOrderID       string          `gorm:"size:100;uniqueIndex" json:"gateway_order_id"`
	GatewayPaymentStatus string          `gorm:"size:100" json:"gateway_payment_status"`
	GatewayPaymentID     string          `gorm:"size:100" json:"gateway_payment_id"`
	Paid                 bool            `gorm:"not null;default:false" json:"paid"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
