package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/auth"
	"github.com/stitchtees/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers registration, login, and profile endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db))

		authGroup.GET("/me", middleware.RequireAuth, auth.Me(db))
		authGroup.PUT("/profile", middleware.RequireAuth, auth.UpdateProfile(db))
	}
}
