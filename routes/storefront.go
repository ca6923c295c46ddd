package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stitchtees/storefront-api/cache"
	cartControllers "github.com/stitchtees/storefront-api/controllers/cart"
	orderControllers "github.com/stitchtees/storefront-api/controllers/order"
	productcontroller "github.com/stitchtees/storefront-api/controllers/product"
	"github.com/stitchtees/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupStorefrontRoutes registers the public catalog, cart, and order
// endpoints. Carts are scoped by the X-Session-Id header, no auth required.
func SetupStorefrontRoutes(api *gin.RouterGroup, db *gorm.DB, catalog *cache.Catalog) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db, catalog))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}

	cart := api.Group("/cart")
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("", cartControllers.AddItem(db))
		cart.PUT("/:id", cartControllers.UpdateItem(db))
		cart.DELETE("/:id", cartControllers.RemoveItem(db))
		cart.DELETE("", cartControllers.ClearCart(db))
	}

	orders := api.Group("/orders")
	{
		orders.POST("", middleware.OptionalAuth, orderControllers.CreateOrder(db))
		orders.GET("", orderControllers.GetOrdersByEmail(db))
		orders.GET("/:ref", orderControllers.GetOrderByRef(db))
	}
}
