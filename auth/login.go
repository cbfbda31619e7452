package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Authenticate accepts either the username or the email as login name. A login
// containing @ is looked up by email only; usernames never contain @.
func Authenticate(ctx context.Context, db *gorm.DB, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	query := db.WithContext(ctx).Where("username = ?", login)
	if strings.Contains(login, "@") {
		query = db.WithContext(ctx).Where("email = ?", strings.ToLower(login))
	}
	var user models.User
	err := query.First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// POST /auth/login
func LoginHandler(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Input", "detail": err.Error()})
			return
		}

		user, err := Authenticate(c.Request.Context(), db, input.Username, input.Password)
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("authenticate user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		token, expiresAt, err := IssueToken(secret, *user, TokenTTL)
		if err != nil {
			log.Error().Err(err).Uint("user_id", user.ID).Msg("issue token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"expires_at": expiresAt,
			"user":       user,
		})
	}
}
