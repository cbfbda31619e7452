package productcontroller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/skincare-storefront/auth"
	"github.com/junaidrashid-git/skincare-storefront/database"
	"github.com/junaidrashid-git/skincare-storefront/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

type ProductTestSuite struct {
	suite.Suite
	db       *gorm.DB
	ctx      context.Context
	router   *gin.Engine
	uploads  string
	products map[string]models.Product
}

func TestProductSuite(t *testing.T) {
	suite.Run(t, new(ProductTestSuite))
}

func product(title string, cat models.CategoryCode, selling, discounted int64) models.Product {
	return models.Product{
		Title:           title,
		Category:        cat,
		SellingPrice:    decimal.NewFromInt(selling),
		DiscountedPrice: decimal.NewFromInt(discounted),
		Description:     title + " description",
	}
}

func (s *ProductTestSuite) SetupTest() {
	db, err := database.OpenInMemory()
	s.Require().NoError(err)
	s.db = db
	s.ctx = context.Background()
	s.uploads = s.T().TempDir()

	s.products = map[string]models.Product{}
	for _, p := range []models.Product{
		product("Shea Butter Cream", models.CategoryCream, 250, 199),
		product("Aloe Cream", models.CategoryCream, 180, 150),
		product("Aloe Cream", models.CategoryCream, 180, 160),
		product("Rose Water Wash", models.CategoryWash, 120, 99),
		product("100%_Pure Balm", models.CategoryBalm, 90, 90),
	} {
		s.Require().NoError(db.Create(&p).Error)
		s.products[p.Title] = p
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	user := r.Group("/user", func(c *gin.Context) {
		c.Set(auth.UserIDKey, uint(1))
		c.Next()
	})
	user.GET("/categories", GetCategories(db))
	user.GET("/category/:code", GetByCategory(db))
	user.GET("/category-title/:title", GetByTitle(db))
	user.GET("/products/:id", GetProductByID(db))
	user.GET("/search", SearchProducts(db))

	admin := r.Group("/admin/products")
	admin.GET("", GetProducts(db))
	admin.POST("", CreateProduct(db, s.uploads))
	admin.PUT("/:id", UpdateProduct(db, s.uploads))
	admin.DELETE("/:id", DeleteProduct(db))
	s.router = r
}

func (s *ProductTestSuite) TearDownTest() {
	sqlDB, _ := s.db.DB()
	sqlDB.Close()
}

func (s *ProductTestSuite) do(req *http.Request) (int, map[string]any) {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func (s *ProductTestSuite) get(path string) (int, map[string]any) {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func titlesOf(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

func (s *ProductTestSuite) TestByCategoryReturnsOnlyThatCategory() {
	products, titles, err := ByCategory(s.ctx, s.db, models.CategoryCream)
	s.Require().NoError(err)
	s.Len(products, 3)
	for _, p := range products {
		s.Equal(models.CategoryCream, p.Category)
	}
	s.Equal([]string{"Aloe Cream", "Shea Butter Cream"}, titles)
	s.ElementsMatch(Titles(products), titles)

	products, titles, err = ByCategory(s.ctx, s.db, "XX")
	s.Require().NoError(err)
	s.Empty(products)
	s.Empty(titles)
}

func (s *ProductTestSuite) TestByTitle() {
	products, titles, err := ByTitle(s.ctx, s.db, "Aloe Cream")
	s.Require().NoError(err)
	s.Len(products, 2)
	s.Equal([]string{"Aloe Cream", "Shea Butter Cream"}, titles)

	_, _, err = ByTitle(s.ctx, s.db, "aloe cream")
	s.ErrorIs(err, ErrNoProducts)
}

func (s *ProductTestSuite) TestSearchIsCaseInsensitiveSubstring() {
	products, err := Search(s.ctx, s.db, "ALOE")
	s.Require().NoError(err)
	s.Equal([]string{"Aloe Cream", "Aloe Cream"}, titlesOf(products))

	products, err = Search(s.ctx, s.db, "butter cr")
	s.Require().NoError(err)
	s.Equal([]string{"Shea Butter Cream"}, titlesOf(products))

	products, err = Search(s.ctx, s.db, "no such thing")
	s.Require().NoError(err)
	s.Empty(products)
}

func (s *ProductTestSuite) TestSearchTreatsWildcardsLiterally() {
	products, err := Search(s.ctx, s.db, "%_")
	s.Require().NoError(err)
	s.Equal([]string{"100%_Pure Balm"}, titlesOf(products))

	products, err = Search(s.ctx, s.db, "_")
	s.Require().NoError(err)
	s.Len(products, 1)
}

func (s *ProductTestSuite) TestCategorySummaries() {
	summaries, err := CategorySummaries(s.ctx, s.db)
	s.Require().NoError(err)
	s.Len(summaries, len(models.Categories))

	counts := map[string]int64{}
	for _, cs := range summaries {
		counts[cs.Code] = cs.Count
	}
	s.EqualValues(3, counts["CR"])
	s.EqualValues(1, counts["WS"])
	s.EqualValues(0, counts["SR"])
}

func (s *ProductTestSuite) TestBrowseHandlersCarryBadge() {
	s.Require().NoError(s.db.Create(&models.CartLine{UserID: 1, ProductID: s.products["Aloe Cream"].ID, Quantity: 2}).Error)

	code, body := s.get("/user/category/CR")
	s.Equal(http.StatusOK, code)
	s.EqualValues(1, body["totalitem"])
	s.Len(body["products"], 3)
	s.Equal("Cream", body["label"])

	code, body = s.get("/user/category-title/Rose%20Water%20Wash")
	s.Equal(http.StatusOK, code)
	s.Equal("WS", body["category"])

	code, _ = s.get("/user/category-title/Missing")
	s.Equal(http.StatusNotFound, code)

	code, body = s.get("/user/categories")
	s.Equal(http.StatusOK, code)
	s.Len(body["categories"], 6)
	s.EqualValues(1, body["totalitem"])
}

func (s *ProductTestSuite) TestGetProductByID() {
	id := s.products["Rose Water Wash"].ID

	code, body := s.get("/user/products/" + strconv.Itoa(int(id)))
	s.Equal(http.StatusOK, code)
	s.Equal("Rose Water Wash", body["product"].(map[string]any)["title"])

	code, _ = s.get("/user/products/9999")
	s.Equal(http.StatusNotFound, code)

	code, _ = s.get("/user/products/abc")
	s.Equal(http.StatusBadRequest, code)
}

func (s *ProductTestSuite) TestSearchHandler() {
	code, body := s.get("/user/search?search=wash")
	s.Equal(http.StatusOK, code)
	s.Len(body["products"], 1)

	code, _ = s.get("/user/search")
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.get("/user/search?search=%20")
	s.Equal(http.StatusBadRequest, code)
}

func (s *ProductTestSuite) TestAdminListFilters() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products?category=CR&max_price=155&sort_by=discounted_price", nil))
	s.Equal(http.StatusOK, w.Code)

	var products []models.Product
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &products))
	s.Require().Len(products, 1)
	s.True(decimal.NewFromInt(150).Equal(products[0].DiscountedPrice))

	code, _ := s.get("/admin/products?sort_by=password")
	s.Equal(http.StatusBadRequest, code)
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, filename string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		fw.Write([]byte("png-bytes"))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (s *ProductTestSuite) TestCreateProduct() {
	fields := map[string]string{
		"title":            "Night Serum",
		"selling_price":    "420.00",
		"discounted_price": "380.50",
		"category":         "sr",
		"composition":      "Niacinamide",
	}
	code, body := s.do(multipartRequest(s.T(), http.MethodPost, "/admin/products", fields, "serum.png"))
	s.Require().Equal(http.StatusCreated, code)
	s.Equal("SR", body["category"])
	s.Contains(body["product_image"], "/uploads/productimg/")
	saved, err := os.ReadFile(filepath.Join(s.uploads, "productimg", filepath.Base(body["product_image"].(string))))
	s.Require().NoError(err)
	s.Equal("png-bytes", string(saved))

	code, _ = s.do(multipartRequest(s.T(), http.MethodPost, "/admin/products", fields, ""))
	s.Equal(http.StatusBadRequest, code, "image is required")

	code, _ = s.do(multipartRequest(s.T(), http.MethodPost, "/admin/products", fields, "serum.exe"))
	s.Equal(http.StatusBadRequest, code, "unsupported image type")

	fields["discounted_price"] = "500"
	code, body = s.do(multipartRequest(s.T(), http.MethodPost, "/admin/products", fields, "serum.png"))
	s.Equal(http.StatusBadRequest, code)
	s.Equal(models.ErrDiscountAboveSellingPrice.Error(), body["error"])

	fields["discounted_price"] = "100"
	fields["category"] = "ZZ"
	code, _ = s.do(multipartRequest(s.T(), http.MethodPost, "/admin/products", fields, "serum.png"))
	s.Equal(http.StatusBadRequest, code)
}

func (s *ProductTestSuite) TestUpdateProduct() {
	id := strconv.Itoa(int(s.products["Rose Water Wash"].ID))

	code, body := s.do(multipartRequest(s.T(), http.MethodPut, "/admin/products/"+id,
		map[string]string{"discounted_price": "89.99"}, ""))
	s.Require().Equal(http.StatusOK, code)
	s.Equal("Rose Water Wash", body["title"])

	var stored models.Product
	s.Require().NoError(s.db.First(&stored, id).Error)
	s.True(decimal.RequireFromString("89.99").Equal(stored.DiscountedPrice))

	code, _ = s.do(multipartRequest(s.T(), http.MethodPut, "/admin/products/"+id,
		map[string]string{"discounted_price": "121"}, ""))
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(multipartRequest(s.T(), http.MethodPut, "/admin/products/9999",
		map[string]string{"title": "x"}, ""))
	s.Equal(http.StatusNotFound, code)
}

func (s *ProductTestSuite) TestDeleteProduct() {
	wash := s.products["Rose Water Wash"]
	s.Require().NoError(s.db.Create(&models.CartLine{UserID: 1, ProductID: wash.ID, Quantity: 1}).Error)

	code, _ := s.do(httptest.NewRequest(http.MethodDelete, "/admin/products/"+strconv.Itoa(int(wash.ID)), nil))
	s.Equal(http.StatusOK, code)

	var lines int64
	s.db.Model(&models.CartLine{}).Count(&lines)
	s.Zero(lines)

	balm := s.products["100%_Pure Balm"]
	customer := models.Customer{UserID: 1, Name: "Ayanda", State: "GP"}
	s.Require().NoError(s.db.Create(&customer).Error)
	payment := models.Payment{UserID: 1, Amount: decimal.NewFromInt(130), GatewayOrderID: "order_test"}
	s.Require().NoError(s.db.Create(&payment).Error)
	s.Require().NoError(s.db.Create(&models.Order{
		UserID: 1, CustomerID: customer.ID, ProductID: balm.ID, Quantity: 1, PaymentID: payment.ID,
	}).Error)
	code, _ = s.do(httptest.NewRequest(http.MethodDelete, "/admin/products/"+strconv.Itoa(int(balm.ID)), nil))
	s.Equal(http.StatusConflict, code)

	code, _ = s.do(httptest.NewRequest(http.MethodDelete, "/admin/products/9999", nil))
	s.Equal(http.StatusNotFound, code)
}

func (s *ProductTestSuite) TestExcelRoundTrip() {
	var all []models.Product
	s.Require().NoError(s.db.Order("id").Find(&all).Error)

	file, err := ProductsWorkbook(all)
	s.Require().NoError(err)

	var buf bytes.Buffer
	s.Require().NoError(file.Write(&buf))
	reopened, err := xlsx.OpenBinary(buf.Bytes())
	s.Require().NoError(err)

	sheet := reopened.Sheets[0]
	sheet.Rows[1].Cells[1].SetValue("Shea Butter Cream v2")
	sheet.Rows[2].Cells[0].SetValue("")
	sheet.Rows[3].Cells[7].SetValue("XX")

	res := ImportProducts(s.ctx, s.db, sheet)
	s.Equal(ImportResult{Created: 1, Updated: 3, Skipped: 1}, res)

	var renamed models.Product
	s.Require().NoError(s.db.First(&renamed, all[0].ID).Error)
	s.Equal("Shea Butter Cream v2", renamed.Title)
	s.True(all[0].DiscountedPrice.Equal(renamed.DiscountedPrice))

	var count int64
	s.db.Model(&models.Product{}).Count(&count)
	s.EqualValues(len(all)+1, count)
}
