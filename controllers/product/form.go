package productcontroller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/junaidrashid-git/skincare-storefront/storage"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// applyProductForm copies the non-empty multipart fields onto p. With requireAll every
// mandatory field must be present, as on create.
func applyProductForm(c *gin.Context, p *models.Product, requireAll bool) error {
	field := func(name string) string { return strings.TrimSpace(c.PostForm(name)) }

	if requireAll {
		for _, name := range []string{"title", "selling_price", "discounted_price", "category"} {
			if field(name) == "" {
				return fmt.Errorf("%s is required", name)
			}
		}
	}

	if v := field("title"); v != "" {
		if len(v) > 100 {
			return fmt.Errorf("title must be at most 100 characters")
		}
		p.Title = v
	}
	if v := field("selling_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid selling_price")
		}
		p.SellingPrice = d
	}
	if v := field("discounted_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid discounted_price")
		}
		p.DiscountedPrice = d
	}
	if v := field("category"); v != "" {
		code := models.CategoryCode(strings.ToUpper(v))
		if !code.Valid() {
			return fmt.Errorf("invalid category %q", v)
		}
		p.Category = code
	}
	if v, ok := c.GetPostForm("description"); ok {
		p.Description = v
	}
	if v, ok := c.GetPostForm("composition"); ok {
		p.Composition = v
	}
	if v, ok := c.GetPostForm("application_text"); ok {
		p.ApplicationText = v
	}
	return p.ValidatePrices()
}

func writeImageError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrUnsupportedImage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Error().Err(err).Msg("save product image")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
}
