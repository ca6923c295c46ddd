package adminController

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/cache"
	"github.com/stitchtees/storefront-api/models"
	"gorm.io/gorm"
)

type FlashDealInput struct {
	ProductID          uint      `json:"product_id" binding:"required"`
	DiscountPercentage int       `json:"discount_percentage" binding:"required"`
	StartTime          time.Time `json:"start_time" binding:"required"`
	EndTime            time.Time `json:"end_time" binding:"required"`
	IsActive           *bool     `json:"is_active"`
}

func validateDealInput(input FlashDealInput) string {
	if input.DiscountPercentage < 1 || input.DiscountPercentage > 99 {
		return "discount_percentage must be between 1 and 99"
	}
	if !input.EndTime.After(input.StartTime) {
		return "end_time must be after start_time"
	}
	return ""
}

// hasOverlap reports whether another active deal for the same product
// intersects [start, end). Best-effort: checked at write time only, there is
// no database constraint backing it.
func hasOverlap(db *gorm.DB, productID uint, start, end time.Time, excludeID uint) (bool, error) {
	var deals []models.FlashDeal
	if err := db.
		Where("product_id = ? AND is_active = ?", productID, true).
		Where("id <> ?", excludeID).
		Find(&deals).Error; err != nil {
		return false, err
	}
	for _, d := range deals {
		if d.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// GET /api/admin/flash-deals
func GetFlashDeals(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var deals []models.FlashDeal
		if err := db.Preload("Product").Order("start_time DESC").Find(&deals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch flash deals"})
			return
		}
		c.JSON(http.StatusOK, deals)
	}
}

// POST /api/admin/flash-deals
func CreateFlashDeal(db *gorm.DB, catalog *cache.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input FlashDealInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		if msg := validateDealInput(input); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate product"})
			}
			return
		}

		active := true
		if input.IsActive != nil {
			active = *input.IsActive
		}

		if active {
			overlap, err := hasOverlap(db, input.ProductID, input.StartTime, input.EndTime, 0)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check deal overlap"})
				return
			}
			if overlap {
				c.JSON(http.StatusConflict, gin.H{"error": "an active flash deal already covers part of this window"})
				return
			}
		}

		deal := models.FlashDeal{
			ProductID:          input.ProductID,
			DiscountPercentage: input.DiscountPercentage,
			StartTime:          input.StartTime,
			EndTime:            input.EndTime,
			IsActive:           active,
		}
		if err := db.Create(&deal).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create flash deal"})
			return
		}

		catalog.Invalidate(c.Request.Context())
		c.JSON(http.StatusCreated, deal)
	}
}

// PUT /api/admin/flash-deals/:id
func UpdateFlashDeal(db *gorm.DB, catalog *cache.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var deal models.FlashDeal
		if err := db.First(&deal, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "flash deal not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch flash deal"})
			}
			return
		}

		var input FlashDealInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		if msg := validateDealInput(input); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		active := deal.IsActive
		if input.IsActive != nil {
			active = *input.IsActive
		}

		if active {
			overlap, err := hasOverlap(db, input.ProductID, input.StartTime, input.EndTime, deal.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check deal overlap"})
				return
			}
			if overlap {
				c.JSON(http.StatusConflict, gin.H{"error": "an active flash deal already covers part of this window"})
				return
			}
		}

		deal.ProductID = input.ProductID
		deal.DiscountPercentage = input.DiscountPercentage
		deal.StartTime = input.StartTime
		deal.EndTime = input.EndTime
		deal.IsActive = active

		if err := db.Save(&deal).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update flash deal"})
			return
		}

		catalog.Invalidate(c.Request.Context())
		c.JSON(http.StatusOK, deal)
	}
}

// DELETE /api/admin/flash-deals/:id
func DeleteFlashDeal(db *gorm.DB, catalog *cache.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ?", c.Param("id")).Delete(&models.FlashDeal{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete flash deal"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "flash deal not found"})
			return
		}

		catalog.Invalidate(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "flash deal deleted"})
	}
}
