package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/cache"
	"github.com/stitchtees/storefront-api/models"
	"gorm.io/gorm"
)

// DELETE /api/admin/products/:id
//
// Deletion is blocked while order items reference the product. Passing
// ?force=true deletes the referencing order items first, losing purchase
// history for this product.
func DeleteProduct(db *gorm.DB, catalog *cache.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
			}
			return
		}

		force := c.Query("force") == "true"

		var refs int64
		if err := db.Model(&models.OrderItem{}).Where("product_id = ?", product.ID).Count(&refs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check order references"})
			return
		}
		if refs > 0 && !force {
			c.JSON(http.StatusConflict, gin.H{"error": "product is referenced by existing orders; pass force=true to delete anyway"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if refs > 0 {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.OrderItem{}).Error; err != nil {
					return err
				}
			}
			// cart rows weakly reference the product, drop them too
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.FlashDeal{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
			return
		}

		catalog.Invalidate(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
