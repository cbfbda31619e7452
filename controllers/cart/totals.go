package cartControllers

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/shopspring/decimal"
)

// ShippingFee is the flat delivery charge added to every cart.
var ShippingFee = decimal.NewFromInt(40)

type Totals struct {
	Amount      decimal.Decimal
	TotalAmount decimal.Decimal
}

// ComputeTotals sums quantity x discounted price over lines and adds the shipping fee.
// Every handler that reports cart money goes through here.
func ComputeTotals(lines []models.CartLine) Totals {
	amount := decimal.Zero
	for _, l := range lines {
		amount = amount.Add(l.TotalCost())
	}
	return Totals{Amount: amount, TotalAmount: amount.Add(ShippingFee)}
}

func (t Totals) JSON() gin.H {
	return gin.H{
		"amount":      t.Amount.InexactFloat64(),
		"totalamount": t.TotalAmount.InexactFloat64(),
	}
}
