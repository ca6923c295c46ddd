package adminController

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/models"
	"gorm.io/gorm"
)

const lowStockThreshold = 5

type CategoryBreakdown struct {
	Category     string `json:"category"`
	ProductCount int64  `json:"product_count"`
	TotalStock   int64  `json:"total_stock"`
}

type DashboardStats struct {
	TotalRevenue      float64             `json:"total_revenue"`
	OrderCount        int64               `json:"order_count"`
	ProductCount      int64               `json:"product_count"`
	UserCount         int64               `json:"user_count"`
	RevenueLast30Days float64             `json:"revenue_last_30_days"`
	RevenueGrowthPct  float64             `json:"revenue_growth_pct"`
	LowStockCount     int64               `json:"low_stock_count"`
	Categories        []CategoryBreakdown `json:"categories"`
}

func revenueBetween(db *gorm.DB, from, to time.Time) (float64, error) {
	var revenue float64
	err := db.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// GET /api/admin/stats
//
// Report numbers reconcile with the underlying rows: revenue sums exclude
// cancelled orders, growth compares the trailing 30-day window against the
// 30 days before it.
func GetDashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		var stats DashboardStats
		var err error

		if stats.TotalRevenue, err = revenueBetween(db, time.Time{}, now); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute revenue"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&stats.OrderCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count orders"})
			return
		}
		if err := db.Model(&models.Product{}).Count(&stats.ProductCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count products"})
			return
		}
		if err := db.Model(&models.User{}).Count(&stats.UserCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count users"})
			return
		}

		last30, err := revenueBetween(db, now.AddDate(0, 0, -30), now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute revenue"})
			return
		}
		prev30, err := revenueBetween(db, now.AddDate(0, 0, -60), now.AddDate(0, 0, -30))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute revenue"})
			return
		}
		stats.RevenueLast30Days = last30
		if prev30 > 0 {
			stats.RevenueGrowthPct = (last30 - prev30) / prev30 * 100
		}

		if err := db.Model(&models.Product{}).
			Where("stock < ?", lowStockThreshold).
			Count(&stats.LowStockCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count low stock"})
			return
		}

		if err := db.Model(&models.Product{}).
			Select("category, COUNT(*) AS product_count, COALESCE(SUM(stock), 0) AS total_stock").
			Group("category").
			Scan(&stats.Categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute category breakdown"})
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}
