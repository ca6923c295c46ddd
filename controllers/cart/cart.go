package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/models"
	"github.com/stitchtees/storefront-api/pricing"
	"gorm.io/gorm"
)

// SessionHeader carries the opaque cart capability for guests. Whoever holds
// the id holds the cart.
const SessionHeader = "X-Session-Id"

type AddItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity"`
}

// CartItemView is a cart row joined with its product, the effective flash
// deal, and the derived unit/line prices.
type CartItemView struct {
	models.CartItem
	Product   models.Product    `json:"product"`
	FlashDeal *models.FlashDeal `json:"flashDeal,omitempty"`
	UnitPrice float64           `json:"unit_price"`
	LineTotal float64           `json:"line_total"`
}

func buildItemViews(db *gorm.DB, now time.Time, items []models.CartItem) ([]CartItemView, error) {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	var products []models.Product
	if len(ids) > 0 {
		if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
			return nil, err
		}
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	deals, err := models.EffectiveDealsForProducts(db, now, ids)
	if err != nil {
		return nil, err
	}

	views := make([]CartItemView, 0, len(items))
	for _, it := range items {
		view := CartItemView{CartItem: it, Product: byID[it.ProductID]}
		if d, ok := deals[it.ProductID]; ok {
			deal := d
			view.FlashDeal = &deal
		}
		view.UnitPrice = pricing.EffectivePrice(view.Product.Price, view.FlashDeal)
		view.LineTotal = pricing.RoundCents(view.UnitPrice * float64(it.Quantity))
		views = append(views, view)
	}
	return views, nil
}

// GET /api/cart
// A missing session id yields an empty cart rather than an error.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			c.JSON(http.StatusOK, []CartItemView{})
			return
		}

		var items []models.CartItem
		if err := db.Where("session_id = ?", sessionID).Order("created_at").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart"})
			return
		}

		views, err := buildItemViews(db, time.Now(), items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

// POST /api/cart
// Adding an existing (product, size, color) tuple merges by summing quantities.
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
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

		var item models.CartItem
		err := db.Where(
			"session_id = ? AND product_id = ? AND size = ? AND color = ?",
			sessionID, input.ProductID, input.Size, input.Color,
		).First(&item).Error

		created := false
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				SessionID: sessionID,
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
				Size:      input.Size,
				Color:     input.Color,
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item to cart"})
				return
			}
			created = true
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart item"})
			return
		default:
			item.Quantity += input.Quantity
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart item"})
				return
			}
		}

		views, err := buildItemViews(db, time.Now(), []models.CartItem{item})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart item"})
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, views[0])
	}
}

// PUT /api/cart/:id
// A quantity of zero or less removes the item; that is treated as a normal
// removal, not an error.
func UpdateItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
			return
		}

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}

		var item models.CartItem
		if err := db.Where("id = ? AND session_id = ?", c.Param("id"), sessionID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart item"})
			}
			return
		}

		if input.Quantity <= 0 {
			if err := db.Delete(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove cart item"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "cart item removed"})
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart item"})
			return
		}

		views, err := buildItemViews(db, time.Now(), []models.CartItem{item})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cart item"})
			return
		}
		c.JSON(http.StatusOK, views[0])
	}
}

// DELETE /api/cart/:id
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
			return
		}

		result := db.Where("id = ? AND session_id = ?", c.Param("id"), sessionID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete cart item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart item deleted"})
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session id is required"})
			return
		}

		if err := db.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
