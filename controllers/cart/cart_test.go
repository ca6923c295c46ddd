package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.FlashDeal{}, &models.CartItem{},
	))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/cart", GetCart(db))
	r.POST("/api/cart", AddItem(db))
	r.PUT("/api/cart/:id", UpdateItem(db))
	r.DELETE("/api/cart/:id", RemoveItem(db))
	r.DELETE("/api/cart", ClearCart(db))
	return r
}

func seedProduct(t *testing.T, db *gorm.DB, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:     "Classic Tee",
		Price:    price,
		Category: models.CategoryTShirt,
		Stock:    stock,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func doJSON(r *gin.Engine, method, path, session string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddItem_MergesSameVariant(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	p := seedProduct(t, db, 25, 10)

	w := doJSON(r, http.MethodPost, "/api/cart", "sess-1", AddItemInput{
		ProductID: p.ID, Quantity: 2, Size: "M", Color: "black",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/cart", "sess-1", AddItemInput{
		ProductID: p.ID, Quantity: 3, Size: "M", Color: "black",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Where("session_id = ?", "sess-1").Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Quantity)
}

func TestAddItem_DifferentVariantsStaySeparate(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	p := seedProduct(t, db, 25, 10)

	doJSON(r, http.MethodPost, "/api/cart", "sess-1", AddItemInput{ProductID: p.ID, Quantity: 1, Size: "M", Color: "black"})
	doJSON(r, http.MethodPost, "/api/cart", "sess-1", AddItemInput{ProductID: p.ID, Quantity: 1, Size: "L", Color: "black"})

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("session_id = ?", "sess-1").Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestAddItem_UnknownProductRejected(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)

	w := doJSON(r, http.MethodPost, "/api/cart", "sess-1", AddItemInput{ProductID: 999, Quantity: 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateItem_ZeroQuantityRemoves(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	p := seedProduct(t, db, 25, 10)

	w := doJSON(r, http.MethodPost, "/api/cart", "sess-1", AddItemInput{ProductID: p.ID, Quantity: 2})
	require.Equal(t, http.StatusCreated, w.Code)
	var created CartItemView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/cart/%d", created.ID), "sess-1", UpdateItemInput{Quantity: 0})
	require.Equal(t, http.StatusOK, w.Code)

	// listing the cart afterwards does not include it
	w = doJSON(r, http.MethodGet, "/api/cart", "sess-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []CartItemView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Empty(t, items)
}

func TestUpdateItem_OtherSessionCannotTouch(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	p := seedProduct(t, db, 25, 10)

	w := doJSON(r, http.MethodPost, "/api/cart", "sess-1", AddItemInput{ProductID: p.ID, Quantity: 2})
	var created CartItemView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/cart/%d", created.ID), "sess-2", UpdateItemInput{Quantity: 5})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCart_MissingSessionYieldsEmptyList(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)

	w := doJSON(r, http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(db)
	p := seedProduct(t, db, 25, 10)

	doJSON(r, http.MethodPost, "/api/cart", "sess-1", AddItemInput{ProductID: p.ID, Quantity: 2})
	doJSON(r, http.MethodPost, "/api/cart", "sess-1", AddItemInput{ProductID: p.ID, Quantity: 1, Size: "L"})

	w := doJSON(r, http.MethodDelete, "/api/cart", "sess-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("session_id = ?", "sess-1").Count(&count).Error)
	require.Zero(t, count)
}
