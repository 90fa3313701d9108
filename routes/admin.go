package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/gy-putra/tamago/controllers/order"
	productControllers "github.com/gy-putra/tamago/controllers/product"
	reviewControllers "github.com/gy-putra/tamago/controllers/review"
	userControllers "github.com/gy-putra/tamago/controllers/user"
	"github.com/gy-putra/tamago/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Gated by the role claim
// on the session token — nothing in here inspects emails or identities itself.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.POST("/import-excel", productControllers.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PATCH("/:orderID", orderControllers.UpdateOrderStatusHandler(db))
		}

		// websocket feed of newly placed orders
		adminGroup.GET("/ws/orders", orderControllers.OrderWebSocketHandler)

		// ─────────── Review Moderation ───────────
		adminGroup.GET("/reviews", reviewControllers.GetAllReviewsHandler(db))

		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
	}
}
