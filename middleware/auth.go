package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/auth"
	"github.com/stitchtees/storefront-api/models"
	"gorm.io/gorm"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// RequireAuth verifies the bearer token and stores the user id in the context.
func RequireAuth(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is missing"})
		return
	}

	claims, err := auth.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	c.Set("user_id", claims.UserID)
	c.Next()
}

// OptionalAuth sets the user id when a valid token is present but never
// rejects the request. Order creation uses it to attach guest checkouts to an
// account when one is logged in.
func OptionalAuth(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		if claims, err := auth.ParseToken(token); err == nil {
			c.Set("user_id", claims.UserID)
		}
	}
	c.Next()
}

// RequireAdmin loads the authenticated user's role from the store and rejects
// non-admins. Must run after RequireAuth.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
			return
		}

		if user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
