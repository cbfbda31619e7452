package cartControllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/auth"
	"github.com/junaidrashid-git/skincare-storefront/database"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

func TestComputeTotals(t *testing.T) {
	lines := []models.CartLine{
		{Quantity: 2, Product: models.Product{DiscountedPrice: decimal.NewFromInt(150)}},
		{Quantity: 1, Product: models.Product{DiscountedPrice: decimal.NewFromInt(300)}},
	}
	totals := ComputeTotals(lines)
	assert.True(t, decimal.NewFromInt(600).Equal(totals.Amount))
	assert.True(t, decimal.NewFromInt(640).Equal(totals.TotalAmount))

	empty := ComputeTotals(nil)
	assert.True(t, empty.Amount.IsZero())
	assert.True(t, decimal.NewFromInt(40).Equal(empty.TotalAmount))
}

type CartTestSuite struct {
	suite.Suite
	db     *gorm.DB
	ctx    context.Context
	user   uint
	cream  models.Product
	serum  models.Product
	router *gin.Engine
}

func TestCartSuite(t *testing.T) {
	suite.Run(t, new(CartTestSuite))
}

func (s *CartTestSuite) SetupTest() {
	db, err := database.OpenInMemory()
	s.Require().NoError(err)
	s.db = db
	s.ctx = context.Background()
	s.user = 1

	s.cream = models.Product{Title: "Day Cream", Category: models.CategoryCream,
		SellingPrice: decimal.NewFromInt(200), DiscountedPrice: decimal.NewFromInt(150)}
	s.serum = models.Product{Title: "Vitamin Serum", Category: models.CategorySerum,
		SellingPrice: decimal.NewFromInt(350), DiscountedPrice: decimal.NewFromInt(300)}
	s.Require().NoError(db.Create(&s.cream).Error)
	s.Require().NoError(db.Create(&s.serum).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/user/cart", func(c *gin.Context) {
		c.Set(auth.UserIDKey, s.user)
		c.Next()
	})
	g.GET("", GetUserCart(db))
	g.GET("/add", AddToCart(db))
	g.GET("/plus", PlusCart(db))
	g.GET("/minus", MinusCart(db))
	g.GET("/remove", RemoveCart(db))
	s.router = r
}

func (s *CartTestSuite) TearDownTest() {
	sqlDB, _ := s.db.DB()
	sqlDB.Close()
}

func (s *CartTestSuite) get(path string) (int, map[string]any) {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func (s *CartTestSuite) TestAddTwiceMergesIntoOneLine() {
	_, err := Add(s.ctx, s.db, s.user, s.cream.ID)
	s.Require().NoError(err)
	line, err := Add(s.ctx, s.db, s.user, s.cream.ID)
	s.Require().NoError(err)

	s.Equal(2, line.Quantity)
	s.Equal("Day Cream", line.Product.Title)

	n, err := Count(s.ctx, s.db, s.user)
	s.Require().NoError(err)
	s.EqualValues(1, n)
}

func (s *CartTestSuite) TestAddUnknownProduct() {
	_, err := Add(s.ctx, s.db, s.user, 999)
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *CartTestSuite) TestIncrementThenDecrementRestoresQuantity() {
	_, err := Add(s.ctx, s.db, s.user, s.cream.ID)
	s.Require().NoError(err)

	qty, err := Increment(s.ctx, s.db, s.user, s.cream.ID)
	s.Require().NoError(err)
	s.Equal(2, qty)

	qty, err = Decrement(s.ctx, s.db, s.user, s.cream.ID)
	s.Require().NoError(err)
	s.Equal(1, qty)
}

func (s *CartTestSuite) TestDecrementAtOneRemovesLine() {
	_, err := Add(s.ctx, s.db, s.user, s.cream.ID)
	s.Require().NoError(err)

	qty, err := Decrement(s.ctx, s.db, s.user, s.cream.ID)
	s.Require().NoError(err)
	s.Zero(qty)

	n, _ := Count(s.ctx, s.db, s.user)
	s.Zero(n)

	_, err = Decrement(s.ctx, s.db, s.user, s.cream.ID)
	s.ErrorIs(err, ErrCartLineNotFound)
}

func (s *CartTestSuite) TestOtherUsersLinesAreInvisible() {
	_, err := Add(s.ctx, s.db, 2, s.cream.ID)
	s.Require().NoError(err)

	_, err = Increment(s.ctx, s.db, s.user, s.cream.ID)
	s.ErrorIs(err, ErrCartLineNotFound)
	s.ErrorIs(Remove(s.ctx, s.db, s.user, s.cream.ID), ErrCartLineNotFound)
}

func (s *CartTestSuite) TestHandlersReportTotals() {
	code, body := s.get("/user/cart/add?prod_id=" + itoa(s.cream.ID))
	s.Equal(http.StatusOK, code)
	s.EqualValues(1, body["totalitem"])

	s.get("/user/cart/add?prod_id=" + itoa(s.serum.ID))

	code, body = s.get("/user/cart/plus?prod_id=" + itoa(s.cream.ID))
	s.Equal(http.StatusOK, code)
	s.EqualValues(2, body["quantity"])
	s.EqualValues(600, body["amount"])
	s.EqualValues(640, body["totalamount"])

	code, body = s.get("/user/cart/remove?prod_id=" + itoa(s.serum.ID))
	s.Equal(http.StatusOK, code)
	s.EqualValues(300, body["amount"])
	s.EqualValues(340, body["totalamount"])
	_, hasQty := body["quantity"]
	s.False(hasQty)

	code, body = s.get("/user/cart/minus?prod_id=" + itoa(s.cream.ID))
	s.Equal(http.StatusOK, code)
	s.EqualValues(1, body["quantity"])
	s.EqualValues(150, body["amount"])

	code, body = s.get("/user/cart")
	s.Equal(http.StatusOK, code)
	s.EqualValues(1, body["totalitem"])
	lines := body["lines"].([]any)
	s.Len(lines, 1)
	s.EqualValues(150, lines[0].(map[string]any)["total_cost"])
}

func (s *CartTestSuite) TestHandlerErrors() {
	code, _ := s.get("/user/cart/plus")
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.get("/user/cart/plus?prod_id=abc")
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.get("/user/cart/plus?prod_id=" + itoa(s.cream.ID))
	s.Equal(http.StatusNotFound, code)

	code, _ = s.get("/user/cart/add?prod_id=12345")
	s.Equal(http.StatusNotFound, code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
