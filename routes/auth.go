package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, verifier auth.TokenVerifier) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", auth.LoginHandler(db, verifier))
	}
}
