package userControllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/auth"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const profileSaved = "Congratulations!! Profile Updated Successfully"

var (
	ErrCustomerNotFound = errors.New("address not found")
	ErrInvalidState     = errors.New("invalid state")
)

type CustomerInput struct {
	Name     string `json:"name" form:"name" binding:"required,max=200"`
	Locality string `json:"locality" form:"locality" binding:"required,max=200"`
	City     string `json:"city" form:"city" binding:"required,max=50"`
	Mobile   int64  `json:"mobile" form:"mobile" binding:"required,min=1"`
	State    string `json:"state" form:"state" binding:"required"`
	Zipcode  int    `json:"zipcode" form:"zipcode" binding:"required,min=1"`
}

func (in CustomerInput) apply(c *models.Customer) error {
	state := models.StateCode(strings.ToUpper(strings.TrimSpace(in.State)))
	if !state.Valid() {
		return ErrInvalidState
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Locality = strings.TrimSpace(in.Locality)
	c.City = strings.TrimSpace(in.City)
	c.Mobile = in.Mobile
	c.State = state
	c.Zipcode = in.Zipcode
	return nil
}

// CreateProfile always inserts a new row; users may keep several addresses.
func CreateProfile(ctx context.Context, db *gorm.DB, userID uint, in CustomerInput) (*models.Customer, error) {
	customer := models.Customer{UserID: userID}
	if err := in.apply(&customer); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func Addresses(ctx context.Context, db *gorm.DB, userID uint) ([]models.Customer, error) {
	var customers []models.Customer
	err := db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&customers).Error
	return customers, err
}

// OwnedCustomer loads an address only if it belongs to userID. Someone else's
// address is reported as missing.
func OwnedCustomer(ctx context.Context, db *gorm.DB, userID, customerID uint) (*models.Customer, error) {
	var customer models.Customer
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", customerID, userID).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateAddress overwrites all six fields of an owned address.
func UpdateAddress(ctx context.Context, db *gorm.DB, userID, customerID uint, in CustomerInput) (*models.Customer, error) {
	customer, err := OwnedCustomer(ctx, db, userID, customerID)
	if err != nil {
		return nil, err
	}
	if err := in.apply(customer); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// POST /user/profile
func CreateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var input CustomerInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Input", "detail": err.Error()})
			return
		}

		customer, err := CreateProfile(c.Request.Context(), db, userID, input)
		if err != nil {
			writeProfileError(c, err, userID)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": profileSaved, "customer": customer})
	}
}

// GET /user/address
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		addresses, err := Addresses(c.Request.Context(), db, userID)
		if err != nil {
			writeProfileError(c, err, userID)
			return
		}
		c.JSON(http.StatusOK, gin.H{"addresses": addresses})
	}
}

// GET /user/address/:id
func GetAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, customerID, ok := addressRequest(c)
		if !ok {
			return
		}
		customer, err := OwnedCustomer(c.Request.Context(), db, userID, customerID)
		if err != nil {
			writeProfileError(c, err, userID)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}

// PUT /user/address/:id
func UpdateAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, customerID, ok := addressRequest(c)
		if !ok {
			return
		}
		var input CustomerInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Input", "detail": err.Error()})
			return
		}

		ctx := c.Request.Context()
		customer, err := UpdateAddress(ctx, db, userID, customerID, input)
		if err != nil {
			writeProfileError(c, err, userID)
			return
		}
		addresses, err := Addresses(ctx, db, userID)
		if err != nil {
			writeProfileError(c, err, userID)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": profileSaved, "customer": customer, "addresses": addresses})
	}
}

func addressRequest(c *gin.Context) (uint, uint, bool) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, 0, false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
		return 0, 0, false
	}
	return userID, uint(id), true
}

func writeProfileError(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
	case errors.Is(err, ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Input", "detail": err.Error()})
	default:
		log.Error().Err(err).Uint("user_id", userID).Msg("profile operation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
	}
}
