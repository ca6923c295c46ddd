package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/cache"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up the public storefront,
// auth, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, catalog *cache.Catalog) {
	api := r.Group("/api")

	api.GET("/health", healthHandler(db))

	SetupStorefrontRoutes(api, db, catalog)
	SetupAuthRoutes(api, db)
	SetupAdminRoutes(api, db, catalog)
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
