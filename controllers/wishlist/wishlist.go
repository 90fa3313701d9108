package wishlistControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/middleware"
	"github.com/gy-putra/tamago/models"
	"gorm.io/gorm"
)

type WishlistInput struct {
	ProductID string `json:"productId" binding:"required"`
}

type wishlistEntry struct {
	ID        string                  `json:"id"`
	CreatedAt time.Time               `json:"createdAt"`
	Product   models.ProductWithStats `json:"product"`
}

// GET /wishlist
func GetWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var entries []models.Wishlist
		if err := db.
			Where("user_id = ?", userID).
			Preload("Product").
			Preload("Product.Reviews").
			Order("created_at DESC").
			Find(&entries).Error; err != nil {
			log.Printf("❌ Failed to fetch wishlist for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		out := make([]wishlistEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, wishlistEntry{
				ID:        e.ID,
				CreatedAt: e.CreatedAt,
				Product:   models.WithStats(e.Product),
			})
		}

		c.JSON(http.StatusOK, gin.H{"wishlist": out})
	}
}

// POST /wishlist
func AddToWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input WishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		entry := models.Wishlist{
			UserID:    userID,
			ProductID: input.ProductID,
		}
		if err := db.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Product already in wishlist"})
				return
			}
			log.Printf("❌ Failed to add wishlist entry: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":      "Product added to wishlist",
			"wishlistItem": entry,
		})
	}
}

// DELETE /wishlist
func RemoveFromWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input WishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		res := db.Where("user_id = ? AND product_id = ?", userID, input.ProductID).
			Delete(&models.Wishlist{})
		if res.Error != nil {
			log.Printf("❌ Failed to remove wishlist entry: %v", res.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product removed from wishlist"})
	}
}
