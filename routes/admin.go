package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/cache"
	adminController "github.com/stitchtees/storefront-api/controllers/admin"
	orderControllers "github.com/stitchtees/storefront-api/controllers/order"
	productcontroller "github.com/stitchtees/storefront-api/controllers/product"
	userControllers "github.com/stitchtees/storefront-api/controllers/user"
	"github.com/stitchtees/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers every back-office endpoint. The whole group sits
// behind the bearer-token check plus the role lookup.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB, catalog *cache.Catalog) {
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth, middleware.RequireAdmin(db))
	{
		products := admin.Group("/products")
		{
			products.GET("", productcontroller.GetProducts(db, catalog))
			products.POST("", productcontroller.CreateProduct(db, catalog))
			products.PUT("/:id", productcontroller.UpdateProduct(db, catalog))
			products.DELETE("/:id", productcontroller.DeleteProduct(db, catalog))
			products.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		users := admin.Group("/users")
		{
			users.GET("", userControllers.GetAllUsers(db))
			users.GET("/:id", userControllers.GetUserByID(db))
			users.PUT("/:id", userControllers.UpdateUser(db))
			users.DELETE("/:id", userControllers.DeleteUser(db))
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", orderControllers.GetAllOrders(db))
			orders.GET("/ws", orderControllers.OrderFeed)
			orders.PUT("/:orderID/status", orderControllers.UpdateOrderStatus(db))
			orders.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatus(db))
			orders.DELETE("/:orderID", orderControllers.DeleteOrder(db))
		}

		deals := admin.Group("/flash-deals")
		{
			deals.GET("", adminController.GetFlashDeals(db))
			deals.POST("", adminController.CreateFlashDeal(db, catalog))
			deals.PUT("/:id", adminController.UpdateFlashDeal(db, catalog))
			deals.DELETE("/:id", adminController.DeleteFlashDeal(db, catalog))
		}

		admin.GET("/customers", adminController.GetCustomers(db))
		admin.GET("/stats", adminController.GetDashboardStats(db))
	}
}
