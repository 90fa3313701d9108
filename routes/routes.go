package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/auth"
	chatbotControllers "github.com/gy-putra/tamago/controllers/chatbot"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, user, and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, verifier auth.TokenVerifier, llm chatbotControllers.Completer) {
	// 1️⃣ Public routes (no middleware)
	SetupAuthRoutes(r, db, verifier)
	SetupPublicRoutes(r, db, llm)

	// 2️⃣ User routes (JWT-protected)
	SetupUserRoutes(r, db, rdb)

	// 3️⃣ Admin routes (JWT + role claim)
	SetupAdminRoutes(r, db)
}
