package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/cache"
	"github.com/stitchtees/storefront-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Category    string   `json:"category" binding:"required"`
	ImageURL    string   `json:"image_url"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Stock       int      `json:"stock" binding:"min=0"`
	Featured    bool     `json:"featured"`
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB, catalog *cache.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}
		if !models.ValidCategory(input.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category must be t-shirt or hoodie"})
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Category:    models.ProductCategory(input.Category),
			ImageURL:    input.ImageURL,
			Sizes:       datatypes.NewJSONSlice(input.Sizes),
			Colors:      datatypes.NewJSONSlice(input.Colors),
			Stock:       input.Stock,
			Featured:    input.Featured,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
			return
		}

		catalog.Invalidate(c.Request.Context())
		c.JSON(http.StatusCreated, product)
	}
}
