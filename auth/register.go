package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrPasswordMismatch = errors.New("the two password fields didn't match")
	ErrUsernameTaken    = errors.New("a user with that username already exists")
	ErrEmailTaken       = errors.New("a user with that email already exists")
	ErrInvalidUsername  = errors.New("username may not contain @")
)

type RegisterInput struct {
	Username  string `json:"username" form:"username" binding:"required,max=150"`
	Email     string `json:"email" form:"email" binding:"required,email,max=254"`
	Password1 string `json:"password1" form:"password1" binding:"required,min=8"`
	Password2 string `json:"password2" form:"password2" binding:"required"`
}

// Register validates the input and creates the user with a bcrypt password hash.
func Register(ctx context.Context, db *gorm.DB, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if strings.Contains(in.Username, "@") {
		return nil, ErrInvalidUsername
	}
	if in.Password1 != in.Password2 {
		return nil, ErrPasswordMismatch
	}
	if err := taken(ctx, db, in.Username, in.Email); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password1)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	if err := createUser(ctx, db, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// taken reports ErrUsernameTaken or ErrEmailTaken when either is already registered.
func taken(ctx context.Context, db *gorm.DB, username, email string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}

// createUser inserts the user. A unique-index violation from a concurrent
// registration is reported as the matching taken error.
func createUser(ctx context.Context, db *gorm.DB, user *models.User) error {
	err := db.WithContext(ctx).Create(user).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if takenErr := taken(ctx, db, user.Username, user.Email); takenErr != nil {
		return takenErr
	}
	return fmt.Errorf("create user: %w", err)
}

// POST /auth/register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Input", "detail": err.Error()})
			return
		}

		user, err := Register(c.Request.Context(), db, input)
		switch {
		case errors.Is(err, ErrPasswordMismatch), errors.Is(err, ErrInvalidUsername):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Input", "detail": err.Error()})
			return
		case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case err != nil:
			log.Error().Err(err).Str("username", input.Username).Msg("register user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Congratulations!! Registered Successfully",
			"user":    user,
		})
	}
}
