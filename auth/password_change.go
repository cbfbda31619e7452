package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrWrongOldPassword = errors.New("your old password was entered incorrectly")

type PasswordChangeInput struct {
	OldPassword  string `json:"old_password" form:"old_password" binding:"required"`
	NewPassword1 string `json:"new_password1" form:"new_password1" binding:"required,min=8"`
	NewPassword2 string `json:"new_password2" form:"new_password2" binding:"required"`
}

func ChangePassword(ctx context.Context, db *gorm.DB, userID uint, in PasswordChangeInput) error {
	if in.NewPassword1 != in.NewPassword2 {
		return ErrPasswordMismatch
	}
	var user models.User
	if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return err
	}
	if !CheckPassword(user.PasswordHash, in.OldPassword) {
		return ErrWrongOldPassword
	}
	hash, err := HashPassword(in.NewPassword1)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Model(&user).Update("password_hash", hash).Error
}

// PUT /user/password
func ChangePasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input PasswordChangeInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Input", "detail": err.Error()})
			return
		}

		err := ChangePassword(c.Request.Context(), db, userID, input)
		switch {
		case errors.Is(err, ErrPasswordMismatch), errors.Is(err, ErrWrongOldPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		case err != nil:
			log.Error().Err(err).Uint("user_id", userID).Msg("change password")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}
