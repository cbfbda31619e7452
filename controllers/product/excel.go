package productcontroller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

const importColumns = 9

type ImportResult struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// ImportProducts reads rows in the ProductsWorkbook layout. A row whose ID matches an
// existing product updates it, any other valid row creates a product. Invalid rows are skipped.
func ImportProducts(ctx context.Context, db *gorm.DB, sheet *xlsx.Sheet) ImportResult {
	var res ImportResult
	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		if row == nil || len(row.Cells) < importColumns {
			res.Skipped++
			continue
		}
		get := func(index int) string {
			return strings.TrimSpace(row.Cells[index].String())
		}

		product, ok := productFromRow(get)
		if !ok {
			res.Skipped++
			continue
		}

		if id, err := strconv.ParseUint(get(0), 10, 64); err == nil && id > 0 {
			var existing models.Product
			err := db.WithContext(ctx).First(&existing, id).Error
			if err == nil {
				product.ID = existing.ID
				product.CreatedAt = existing.CreatedAt
				if err := db.WithContext(ctx).Save(&product).Error; err != nil {
					log.Warn().Err(err).Int("row", i+1).Msg("import: update product")
					res.Skipped++
					continue
				}
				res.Updated++
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				res.Skipped++
				continue
			}
		}

		if err := db.WithContext(ctx).Create(&product).Error; err != nil {
			log.Warn().Err(err).Int("row", i+1).Msg("import: create product")
			res.Skipped++
			continue
		}
		res.Created++
	}
	return res
}

func productFromRow(get func(int) string) (models.Product, bool) {
	selling, err1 := decimal.NewFromString(get(2))
	discounted, err2 := decimal.NewFromString(get(3))
	category := models.CategoryCode(strings.ToUpper(get(7)))
	p := models.Product{
		Title:           get(1),
		SellingPrice:    selling,
		DiscountedPrice: discounted,
		Description:     get(4),
		Composition:     get(5),
		ApplicationText: get(6),
		Category:        category,
		ProductImage:    get(8),
	}
	if p.Title == "" || err1 != nil || err2 != nil || !category.Valid() || p.ValidatePrices() != nil {
		return models.Product{}, false
	}
	return p, true
}

// POST /admin/products/import-excel
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}
		if len(xlFile.Sheets) == 0 || len(xlFile.Sheets[0].Rows) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		res := ImportProducts(c.Request.Context(), db, xlFile.Sheets[0])
		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": res.Created,
			"updated_count": res.Updated,
			"skipped_count": res.Skipped,
		})
	}
}
