package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Customer segments purchasers by whether their order email matches a users
// row: registered accounts vs guest checkouts.
type Customer struct {
	Email      string  `json:"email"`
	UserID     *uint   `json:"user_id,omitempty"`
	Registered bool    `json:"registered"`
	OrderCount int64   `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

// GET /api/admin/customers
func GetCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customers []Customer
		err := db.Raw(`
			SELECT o.email,
			       MAX(u.id)                      AS user_id,
			       COUNT(o.id)                    AS order_count,
			       COALESCE(SUM(o.total_amount), 0) AS total_spent
			FROM orders o
			LEFT JOIN users u ON u.email = o.email
			GROUP BY o.email
			ORDER BY total_spent DESC
		`).Scan(&customers).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch customers"})
			return
		}

		for i := range customers {
			customers[i].Registered = customers[i].UserID != nil
		}
		c.JSON(http.StatusOK, customers)
	}
}
