package productcontroller

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/junaidrashid-git/skincare-storefront/models"
	"gorm.io/gorm"
)

var ErrNoProducts = errors.New("no products found")

// ByCategory returns the products of one category and the distinct titles among them.
// An unknown code yields empty results.
func ByCategory(ctx context.Context, db *gorm.DB, code models.CategoryCode) ([]models.Product, []string, error) {
	var products []models.Product
	if err := db.WithContext(ctx).
		Where("category = ?", code).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, nil, err
	}
	return products, Titles(products), nil
}

// ByTitle returns products with exactly title. The side index lists every title in
// the category of the first match.
func ByTitle(ctx context.Context, db *gorm.DB, title string) ([]models.Product, []string, error) {
	var products []models.Product
	if err := db.WithContext(ctx).
		Where("title = ?", title).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, nil, err
	}
	if len(products) == 0 {
		return nil, nil, ErrNoProducts
	}

	var titles []string
	if err := db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category = ?", products[0].Category).
		Distinct().
		Order("title").
		Pluck("title", &titles).Error; err != nil {
		return nil, nil, err
	}
	return products, titles, nil
}

// Search matches query case-insensitively anywhere in the title.
func Search(ctx context.Context, db *gorm.DB, query string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	err := db.WithContext(ctx).
		Where("LOWER(title) LIKE ? ESCAPE '!'", pattern).
		Order("id").
		Find(&products).Error
	return products, err
}

// Titles returns the distinct titles of products, sorted.
func Titles(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	titles := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Title]; ok {
			continue
		}
		seen[p.Title] = struct{}{}
		titles = append(titles, p.Title)
	}
	sort.Strings(titles)
	return titles
}

type CategorySummary struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// CategorySummaries lists every category with its product count, including empty ones.
func CategorySummaries(ctx context.Context, db *gorm.DB) ([]CategorySummary, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	if err := db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.Count
	}

	out := make([]CategorySummary, 0, len(models.Categories))
	for _, ch := range models.Categories {
		out = append(out, CategorySummary{Code: ch.Code, Label: ch.Label, Count: counts[ch.Code]})
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
