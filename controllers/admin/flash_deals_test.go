package adminController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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
		&models.User{}, &models.Product{}, &models.FlashDeal{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func newDealRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/flash-deals", CreateFlashDeal(db, nil))
	r.PUT("/flash-deals/:id", UpdateFlashDeal(db, nil))
	r.DELETE("/flash-deals/:id", DeleteFlashDeal(db, nil))
	r.GET("/flash-deals", GetFlashDeals(db))
	return r
}

func postDeal(r *gin.Engine, input FlashDealInput) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(input)
	req := httptest.NewRequest(http.MethodPost, "/flash-deals", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateFlashDeal_RejectsOverlap(t *testing.T) {
	db := newTestDB(t)
	r := newDealRouter(db)

	p := models.Product{Name: "Tee", Price: 20, Category: models.CategoryTShirt}
	require.NoError(t, db.Create(&p).Error)

	base := time.Now().Truncate(time.Minute)

	w := postDeal(r, FlashDealInput{
		ProductID: p.ID, DiscountPercentage: 20,
		StartTime: base, EndTime: base.Add(2 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// intersecting window for the same product
	w = postDeal(r, FlashDealInput{
		ProductID: p.ID, DiscountPercentage: 30,
		StartTime: base.Add(time.Hour), EndTime: base.Add(3 * time.Hour),
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// touching windows do not overlap: [0,2h) then [2h,3h)
	w = postDeal(r, FlashDealInput{
		ProductID: p.ID, DiscountPercentage: 30,
		StartTime: base.Add(2 * time.Hour), EndTime: base.Add(3 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateFlashDeal_Validation(t *testing.T) {
	db := newTestDB(t)
	r := newDealRouter(db)

	p := models.Product{Name: "Tee", Price: 20, Category: models.CategoryTShirt}
	require.NoError(t, db.Create(&p).Error)

	base := time.Now()

	tests := []struct {
		name  string
		input FlashDealInput
		want  int
	}{
		{
			"discount over 99",
			FlashDealInput{ProductID: p.ID, DiscountPercentage: 100, StartTime: base, EndTime: base.Add(time.Hour)},
			http.StatusBadRequest,
		},
		{
			"end before start",
			FlashDealInput{ProductID: p.ID, DiscountPercentage: 20, StartTime: base.Add(time.Hour), EndTime: base},
			http.StatusBadRequest,
		},
		{
			"unknown product",
			FlashDealInput{ProductID: 999, DiscountPercentage: 20, StartTime: base, EndTime: base.Add(time.Hour)},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postDeal(r, tt.input)
			require.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDeleteFlashDeal(t *testing.T) {
	db := newTestDB(t)
	r := newDealRouter(db)

	p := models.Product{Name: "Tee", Price: 20, Category: models.CategoryTShirt}
	require.NoError(t, db.Create(&p).Error)
	deal := models.FlashDeal{ProductID: p.ID, DiscountPercentage: 10, StartTime: time.Now(), EndTime: time.Now().Add(time.Hour), IsActive: true}
	require.NoError(t, db.Create(&deal).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/flash-deals/%d", deal.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/flash-deals/%d", deal.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
