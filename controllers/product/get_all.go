package productcontroller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/cache"
	"github.com/stitchtees/storefront-api/models"
	"gorm.io/gorm"
)

// GET /api/products
// Optional filters: ?category=t-shirt|hoodie, ?featured=true
func GetProducts(db *gorm.DB, catalog *cache.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		featured := c.Query("featured")

		if category != "" && !models.ValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}

		cacheKey := "products:" + category + ":" + featured
		var cached []ProductView
		if catalog.Get(c.Request.Context(), cacheKey, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}

		query := db.Model(&models.Product{})
		if category != "" {
			query = query.Where("category = ?", category)
		}
		if featured == "true" {
			query = query.Where("featured = ?", true)
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}

		views, err := BuildViews(db, time.Now(), products)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch flash deals"})
			return
		}

		catalog.Set(c.Request.Context(), cacheKey, views)
		c.JSON(http.StatusOK, views)
	}
}
