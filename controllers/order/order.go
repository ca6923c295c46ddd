package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stitchtees/storefront-api/models"
	"github.com/stitchtees/storefront-api/pricing"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// totalTolerance is how far the client-declared total may drift from the
// server-derived one before the order is rejected. Prices are recomputed
// server-side from the product and its effective flash deal; the client total
// is only ever a cross-check.
const totalTolerance = 0.01

var (
	errEmptyOrder        = errors.New("order must contain at least one item")
	errUnknownProduct    = errors.New("product does not exist")
	errInsufficientStock = errors.New("insufficient stock")
	errTotalMismatch     = errors.New("total_amount does not match server-side total")
)

type OrderLineInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type CreateOrderInput struct {
	Email           string                 `json:"email" binding:"required,email"`
	TotalAmount     float64                `json:"total_amount" binding:"required"`
	ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
	Items           []OrderLineInput       `json:"items" binding:"required"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusInput struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// initialStatuses derives the starting order/payment status pair from the
// payment method: cash on delivery goes straight to pending, everything else
// waits on the payment provider.
func initialStatuses(paymentMethod string) (models.OrderStatus, models.PaymentStatus) {
	if paymentMethod == "cod" || paymentMethod == "cash_on_delivery" {
		return models.OrderStatusPending, models.PaymentStatusPending
	}
	return models.OrderStatusPaymentPending, models.PaymentStatusAwaiting
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// createOrder builds and persists an order inside a single transaction.
// Each line's unit price is derived from the product row and its effective
// flash deal at this instant; stock is decremented with a guarded update so
// two near-simultaneous checkouts cannot oversell.
func createOrder(db *gorm.DB, input CreateOrderInput, userID *uint, sessionID string) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, errEmptyOrder
	}

	now := time.Now()
	status, paymentStatus := initialStatuses(input.PaymentMethod)

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var total float64
		items := make([]models.OrderItem, 0, len(input.Items))

		for _, line := range input.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", errUnknownProduct, line.ProductID)
				}
				return err
			}

			// Guarded decrement: the WHERE clause makes the stock check and
			// the deduction a single atomic statement.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for product %q", errInsufficientStock, product.Name)
			}

			deal, err := models.EffectiveDealForProduct(tx, now, product.ID)
			if err != nil {
				return err
			}
			unitPrice := pricing.EffectivePrice(product.Price, deal)
			total += unitPrice * float64(line.Quantity)

			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				Size:        line.Size,
				Color:       line.Color,
				Price:       unitPrice,
			})
		}

		total = pricing.RoundCents(total)
		if math.Abs(total-input.TotalAmount) > totalTolerance {
			return fmt.Errorf("%w: server computed %.2f", errTotalMismatch, total)
		}

		order = models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Email:           input.Email,
			Items:           items,
			TotalAmount:     total,
			Status:          status,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   paymentStatus,
			ShippingAddress: datatypes.NewJSONType(input.ShippingAddress),
			CreatedAt:       now,
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if sessionID != "" {
			if err := tx.Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /api/orders
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
			return
		}

		var userID *uint
		if v, ok := c.Get("user_id"); ok {
			if id, ok := v.(uint); ok {
				userID = &id
			}
		}

		order, err := createOrder(db, input, userID, c.GetHeader("X-Session-Id"))
		if err != nil {
			switch {
			case errors.Is(err, errInsufficientStock):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, errTotalMismatch), errors.Is(err, errEmptyOrder), errors.Is(err, errUnknownProduct):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				log.Printf("order creation failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			}
			return
		}

		BroadcastNewOrder(*order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders?email=
// Orders for an email, newest first. No pagination.
func GetOrdersByEmail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}

		var orders []models.Order
		if err := db.
			Preload("Items").
			Where("email = ?", email).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:ref — numeric id or order ref.
func GetOrderByRef(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("ref")

		var order models.Order
		if err := db.
			Preload("Items").
			Where("id = ? OR order_ref = ?", ref, ref).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /api/admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /api/admin/orders/:orderID/status
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, err := models.ParseOrderStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := db.Model(&models.Order{}).Where("id = ?", c.Param("orderID")).Update("status", status)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
	}
}

// PUT /api/admin/orders/:orderID/payment-status
func UpdatePaymentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdatePaymentStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, err := models.ParsePaymentStatus(input.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := db.Model(&models.Order{}).Where("id = ?", c.Param("orderID")).Update("payment_status", status)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "payment status updated"})
	}
}

// DELETE /api/admin/orders/:orderID
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", orderID).Delete(&models.Order{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
