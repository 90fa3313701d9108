package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/gy-putra/tamago/controllers/cart"
	orderControllers "github.com/gy-putra/tamago/controllers/order"
	reviewControllers "github.com/gy-putra/tamago/controllers/review"
	userControllers "github.com/gy-putra/tamago/controllers/user"
	wishlistControllers "github.com/gy-putra/tamago/controllers/wishlist"
	"github.com/gy-putra/tamago/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupUserRoutes registers every endpoint that needs an authenticated caller.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client) {
	authed := r.Group("/")
	authed.Use(middleware.ValidateToken)
	{
		// ──────────────── Profile ────────────────
		authed.GET("/user", userControllers.GetUser(db))
		authed.PUT("/user", userControllers.UpdateUser(db))

		// ──────────────── Orders ────────────────
		authed.POST("/orders", orderControllers.PlaceOrderHandler(db))
		authed.GET("/orders", orderControllers.GetUserOrdersHandler(db))

		// ──────────────── Reviews ────────────────
		authed.POST("/reviews", reviewControllers.CreateReviewHandler(db))
		authed.PATCH("/reviews/:id", reviewControllers.UpdateReviewHandler(db))
		authed.DELETE("/reviews/:id", reviewControllers.DeleteReviewHandler(db))

		// ──────────────── Wishlist ────────────────
		authed.GET("/wishlist", wishlistControllers.GetWishlistHandler(db))
		authed.POST("/wishlist", wishlistControllers.AddToWishlistHandler(db))
		authed.DELETE("/wishlist", wishlistControllers.RemoveFromWishlistHandler(db))

		// ──────────────── Shopping Cart ────────────────
		authed.GET("/cart", cartControllers.GetUserCart(db, rdb))
		authed.POST("/cart", cartControllers.UpdateCartItem(db, rdb))
		authed.DELETE("/cart/:product_id", cartControllers.DeleteCartItem(rdb))
		authed.DELETE("/cart", cartControllers.ClearUserCart(rdb))
	}
}
