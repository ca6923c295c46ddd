package productcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/models"
	"gorm.io/gorm"
)

// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve product"})
			}
			return
		}

		views, err := BuildViews(db, time.Now(), []models.Product{product})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch flash deals"})
			return
		}
		c.JSON(http.StatusOK, views[0])
	}
}
