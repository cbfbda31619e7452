package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/skincare-storefront/controllers/product"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

var orderColumns = []string{
	"ID", "UserID", "Customer", "City", "State", "Product", "Quantity",
	"TotalCost", "Status", "GatewayOrderID", "OrderedDate",
}

func OrdersWorkbook(orders []models.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range orderColumns {
		header.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.UserID)
		row.AddCell().SetValue(o.Customer.Name)
		row.AddCell().SetValue(o.Customer.City)
		row.AddCell().SetValue(string(o.Customer.State))
		row.AddCell().SetValue(o.Product.Title)
		row.AddCell().SetValue(o.Quantity)
		row.AddCell().SetValue(o.TotalCost().StringFixed(2))
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(o.Payment.GatewayOrderID)
		row.AddCell().SetValue(o.OrderedDate.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}

// GET /admin/orders/export-excel
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.WithContext(c.Request.Context()).
			Preload("Product").Preload("Customer").Preload("Payment").
			Order("id").
			Find(&orders).Error; err != nil {
			log.Error().Err(err).Msg("export orders")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file, err := OrdersWorkbook(orders)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}
		productcontroller.WriteWorkbook(c, file, "orders.xlsx")
	}
}
