package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one product waiting in a user's cart. There is at most one line per
// (user, product); adding the same product again bumps the quantity.
type CartLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product   Product   `json:"product"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalCost is quantity times the discounted price. Product must be loaded.
func (l CartLine) TotalCost() decimal.Decimal {
	return l.Product.DiscountedPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
