package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type CategoryCode string

const (
	CategoryCream    CategoryCode = "CR"
	CategoryMoisture CategoryCode = "MS"
	CategoryCombos   CategoryCode = "CM"
	CategoryWash     CategoryCode = "WS"
	CategorySerum    CategoryCode = "SR"
	CategoryBalm     CategoryCode = "BL"
)

// Categories is the closed category list in display order.
var Categories = []Choice{
	{Code: string(CategoryCream), Label: "Cream"},
	{Code: string(CategoryMoisture), Label: "Moisture"},
	{Code: string(CategoryCombos), Label: "Combos"},
	{Code: string(CategoryWash), Label: "Wash"},
	{Code: string(CategorySerum), Label: "Serum"},
	{Code: string(CategoryBalm), Label: "Balm"},
}

func (c CategoryCode) Valid() bool {
	_, ok := lookup(Categories, string(c))
	return ok
}

func (c CategoryCode) Label() string {
	label, _ := lookup(Categories, string(c))
	return label
}

var ErrDiscountAboveSellingPrice = errors.New("discounted price must not exceed selling price")

type Product struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Title           string          `gorm:"size:100;not null;index" json:"title"`
	SellingPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"selling_price"`
	DiscountedPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discounted_price"`
	Description     string          `gorm:"type:text" json:"description"`
	Composition     string          `gorm:"type:text" json:"composition"`
	ApplicationText string          `gorm:"type:text" json:"application_text"`
	Category        CategoryCode    `gorm:"size:2;not null;index" json:"category"`
	ProductImage    string          `json:"product_image"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ValidatePrices is checked by the admin surface before a product is saved.
// Rows already stored are not rechecked.
func (p *Product) ValidatePrices() error {
	if p.SellingPrice.IsNegative() || p.DiscountedPrice.IsNegative() {
		return errors.New("prices must not be negative")
	}
	if p.DiscountedPrice.GreaterThan(p.SellingPrice) {
		return ErrDiscountAboveSellingPrice
	}
	return nil
}
