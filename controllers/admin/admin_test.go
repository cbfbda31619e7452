package adminController

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/database"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	cream := models.Product{Title: "Day Cream", Category: models.CategoryCream,
		SellingPrice: decimal.NewFromInt(200), DiscountedPrice: decimal.NewFromInt(150)}
	require.NoError(t, db.Create(&cream).Error)
	require.NoError(t, db.Create(&[]models.Customer{
		{UserID: 1, Name: "Ayanda", State: "GP"},
		{UserID: 2, Name: "Lerato", State: "WC"},
	}).Error)
	require.NoError(t, db.Create(&models.CartLine{UserID: 2, ProductID: cream.ID, Quantity: 3}).Error)
	require.NoError(t, db.Create(&[]models.Payment{
		{UserID: 1, Amount: decimal.NewFromInt(190), GatewayOrderID: "order_a", Paid: true},
		{UserID: 2, Amount: decimal.NewFromInt(490), GatewayOrderID: "order_b"},
	}).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/customers", GetCustomers(db))
	r.GET("/admin/carts", GetCartLines(db))
	r.GET("/admin/payments", GetPayments(db))
	return r
}

func get(t *testing.T, r *gin.Engine, path string) (int, []map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body []map[string]any
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w.Code, body
}

func TestAdminLists(t *testing.T) {
	r := setupRouter(t)

	code, customers := get(t, r, "/admin/customers")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, customers, 2)

	_, customers = get(t, r, "/admin/customers?user_id=2")
	require.Len(t, customers, 1)
	assert.Equal(t, "Lerato", customers[0]["name"])

	_, lines := get(t, r, "/admin/carts")
	require.Len(t, lines, 1)
	assert.EqualValues(t, 3, lines[0]["quantity"])
	assert.Equal(t, "Day Cream", lines[0]["product"].(map[string]any)["title"])

	_, payments := get(t, r, "/admin/payments?paid=true")
	require.Len(t, payments, 1)
	assert.Equal(t, "order_a", payments[0]["gateway_order_id"])
}

func TestAdminListsRejectBadFilters(t *testing.T) {
	r := setupRouter(t)

	code, _ := get(t, r, "/admin/customers?user_id=abc")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = get(t, r, "/admin/payments?paid=maybe")
	assert.Equal(t, http.StatusBadRequest, code)
}
