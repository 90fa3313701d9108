package routes

import (
	"github.com/gin-gonic/gin"
	chatbotControllers "github.com/gy-putra/tamago/controllers/chatbot"
	productControllers "github.com/gy-putra/tamago/controllers/product"
	reviewControllers "github.com/gy-putra/tamago/controllers/review"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers the unauthenticated storefront surface:
// catalog browsing, review reading, and the chatbot.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, llm chatbotControllers.Completer) {
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))

	r.GET("/reviews", reviewControllers.GetReviewsHandler(db))

	r.POST("/chatbot", chatbotControllers.ChatHandler(db, llm))
	r.GET("/chatbot", chatbotControllers.StatusHandler)
}
