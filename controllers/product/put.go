package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/cache"
	"github.com/stitchtees/storefront-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductUpdateInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	ImageURL    *string   `json:"image_url"`
	Sizes       *[]string `json:"sizes"`
	Colors      *[]string `json:"colors"`
	Stock       *int      `json:"stock"`
	Featured    *bool     `json:"featured"`
}

// PUT /api/admin/products/:id
func UpdateProduct(db *gorm.DB, catalog *cache.Catalog) gin.HandlerFunc {
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

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
				return
			}
			product.Price = *input.Price
		}
		if input.Category != nil {
			if !models.ValidCategory(*input.Category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "category must be t-shirt or hoodie"})
				return
			}
			product.Category = models.ProductCategory(*input.Category)
		}
		if input.ImageURL != nil {
			product.ImageURL = *input.ImageURL
		}
		if input.Sizes != nil {
			product.Sizes = datatypes.NewJSONSlice(*input.Sizes)
		}
		if input.Colors != nil {
			product.Colors = datatypes.NewJSONSlice(*input.Colors)
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "stock cannot be negative"})
				return
			}
			product.Stock = *input.Stock
		}
		if input.Featured != nil {
			product.Featured = *input.Featured
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
			return
		}

		catalog.Invalidate(c.Request.Context())
		c.JSON(http.StatusOK, product)
	}
}
