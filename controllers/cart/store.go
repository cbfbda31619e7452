package cartControllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/junaidrashid-git/skincare-storefront/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartLineNotFound = errors.New("cart line not found")
)

// Lines returns the user's cart with products loaded, oldest line first.
func Lines(ctx context.Context, db *gorm.DB, userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return lines, nil
}

// Count is the number of lines in the user's cart, shown as the badge on every page.
func Count(ctx context.Context, db *gorm.DB, userID uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.CartLine{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// Add puts one unit of product into the cart. An existing line for the same
// product is incremented instead of duplicated.
func Add(ctx context.Context, db *gorm.DB, userID, productID uint) (*models.CartLine, error) {
	var line models.CartLine
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_lines.quantity + ?", 1),
			}),
		}).Create(&models.CartLine{UserID: userID, ProductID: productID, Quantity: 1}).Error; err != nil {
			return err
		}

		return tx.Preload("Product").
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&line).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// Increment adds one to the line quantity with a single relative UPDATE.
func Increment(ctx context.Context, db *gorm.DB, userID, productID uint) (int, error) {
	var qty int
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartLine{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCartLineNotFound
		}
		return currentQuantity(tx, userID, productID, &qty)
	})
	return qty, err
}

// Decrement removes one unit. A line that reaches zero is deleted and 0 is returned.
func Decrement(ctx context.Context, db *gorm.DB, userID, productID uint) (int, error) {
	var qty int
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartLine{}).
			Where("user_id = ? AND product_id = ? AND quantity > 0", userID, productID).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCartLineNotFound
		}
		if err := currentQuantity(tx, userID, productID, &qty); err != nil {
			return err
		}
		if qty <= 0 {
			qty = 0
			return tx.Where("user_id = ? AND product_id = ?", userID, productID).
				Delete(&models.CartLine{}).Error
		}
		return nil
	})
	return qty, err
}

// Remove deletes the user's line for product.
func Remove(ctx context.Context, db *gorm.DB, userID, productID uint) error {
	res := db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCartLineNotFound
	}
	return nil
}

// Clear empties the cart. Callers pass a transaction when clearing is part of checkout.
func Clear(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error
}

func currentQuantity(tx *gorm.DB, userID, productID uint, qty *int) error {
	var line models.CartLine
	if err := tx.Select("quantity").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error; err != nil {
		return err
	}
	*qty = line.Quantity
	return nil
}
