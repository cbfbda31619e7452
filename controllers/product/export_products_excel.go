package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

var productColumns = []string{
	"ID", "Title", "SellingPrice", "DiscountedPrice", "Description",
	"Composition", "ApplicationText", "Category", "ProductImage",
	"CreatedAt", "UpdatedAt",
}

// ProductsWorkbook lays products out one per row under a header row. The first nine
// columns are the ones ImportProducts reads back.
func ProductsWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range productColumns {
		header.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.SellingPrice.StringFixed(2))
		row.AddCell().SetValue(p.DiscountedPrice.StringFixed(2))
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Composition)
		row.AddCell().SetValue(p.ApplicationText)
		row.AddCell().SetValue(string(p.Category))
		row.AddCell().SetValue(p.ProductImage)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}

// GET /admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.WithContext(c.Request.Context()).Order("id").Find(&products).Error; err != nil {
			log.Error().Err(err).Msg("export products")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file, err := ProductsWorkbook(products)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}
		WriteWorkbook(c, file, "products.xlsx")
	}
}

// WriteWorkbook streams file as an attachment.
func WriteWorkbook(c *gin.Context, file *xlsx.File, filename string) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	c.Status(http.StatusOK)

	if err := file.Write(c.Writer); err != nil {
		log.Error().Err(err).Str("file", filename).Msg("write workbook")
	}
}
