package notify

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/junaidrashid-git/skincare-storefront/models"
)

// OrderEvent is the wire shape of a newly placed order.
type OrderEvent struct {
	OrderID        uint      `json:"order_id"`
	UserID         uint      `json:"user_id"`
	CustomerID     uint      `json:"customer_id"`
	CustomerName   string    `json:"customer_name,omitempty"`
	ProductID      uint      `json:"product_id"`
	ProductTitle   string    `json:"product_title,omitempty"`
	Quantity       int       `json:"quantity"`
	TotalCost      string    `json:"total_cost"`
	Status         string    `json:"status"`
	PaymentID      uint      `json:"payment_id"`
	GatewayOrderID string    `json:"gateway_order_id,omitempty"`
	OrderedDate    time.Time `json:"ordered_date"`
}

func NewOrderEvent(o models.Order) OrderEvent {
	return OrderEvent{
		OrderID:        o.ID,
		UserID:         o.UserID,
		CustomerID:     o.CustomerID,
		CustomerName:   o.Customer.Name,
		ProductID:      o.ProductID,
		ProductTitle:   o.Product.Title,
		Quantity:       o.Quantity,
		TotalCost:      o.TotalCost().StringFixed(2),
		Status:         string(o.Status),
		PaymentID:      o.PaymentID,
		GatewayOrderID: o.Payment.GatewayOrderID,
		OrderedDate:    o.OrderedDate,
	}
}

func (e OrderEvent) Key() []byte {
	return []byte(strconv.FormatUint(uint64(e.OrderID), 10))
}

// Publisher is told about orders after the transaction creating them has committed.
type Publisher interface {
	PublishOrders(ctx context.Context, orders []models.Order) error
}

// Fanout delivers to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) PublishOrders(ctx context.Context, orders []models.Order) error {
	var errs []error
	for _, p := range f {
		if err := p.PublishOrders(ctx, orders); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops everything.
type Nop struct{}

func (Nop) PublishOrders(context.Context, []models.Order) error { return nil }
