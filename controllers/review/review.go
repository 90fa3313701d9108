package reviewControllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/middleware"
	"github.com/gy-putra/tamago/models"
	"gorm.io/gorm"
)

const minCommentLength = 10

type CreateReviewInput struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

type UpdateReviewInput struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// POST /reviews
func CreateReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required. Please sign in to leave a review."})
			return
		}

		var input CreateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID, rating, and comment are required."})
			return
		}

		if input.Rating < 1 || input.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5."})
			return
		}

		comment := strings.TrimSpace(input.Comment)
		if len(comment) < minCommentLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment must be at least 10 characters long."})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review. Please try again."})
			}
			return
		}

		review := models.Review{
			UserID:    userID,
			ProductID: input.ProductID,
			Rating:    input.Rating,
			Comment:   comment,
		}

		// The unique (user, product) index settles the check-then-insert race:
		// a concurrent duplicate surfaces here as a conflict, not a retry.
		if err := db.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product."})
				return
			}
			log.Printf("❌ Failed to create review: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review. Please try again."})
			return
		}

		db.Preload("User").First(&review, "id = ?", review.ID)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Review created successfully",
			"review":  review,
		})
	}
}

// GET /reviews?productId=
func GetReviewsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Query("productId")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required."})
			return
		}

		var reviews []models.Review
		if err := db.
			Where("product_id = ?", productID).
			Preload("User").
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews."})
			return
		}

		totalRating := 0
		for _, r := range reviews {
			totalRating += r.Rating
		}
		averageRating := 0.0
		if len(reviews) > 0 {
			averageRating = math.Round(float64(totalRating)/float64(len(reviews))*10) / 10
		}

		c.JSON(http.StatusOK, gin.H{
			"reviews": reviews,
			"summary": gin.H{
				"totalReviews":  len(reviews),
				"averageRating": averageRating,
			},
		})
	}
}

// PATCH /reviews/:id
func UpdateReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
			return
		}

		id := c.Param("id")

		var input UpdateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input."})
			return
		}

		if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5."})
			return
		}
		if input.Comment != nil && len(strings.TrimSpace(*input.Comment)) < minCommentLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment must be at least 10 characters long."})
			return
		}

		var review models.Review
		if err := db.First(&review, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Review not found."})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review."})
			}
			return
		}

		if review.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own reviews."})
			return
		}

		if input.Rating != nil {
			review.Rating = *input.Rating
		}
		if input.Comment != nil {
			review.Comment = strings.TrimSpace(*input.Comment)
		}

		if err := db.Save(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review."})
			return
		}

		db.Preload("User").First(&review, "id = ?", review.ID)
		c.JSON(http.StatusOK, gin.H{
			"message": "Review updated successfully",
			"review":  review,
		})
	}
}

// DELETE /reviews/:id — owner or admin.
func DeleteReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
			return
		}

		id := c.Param("id")

		var review models.Review
		if err := db.First(&review, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Review not found."})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review."})
			}
			return
		}

		role, _ := c.Get("role")
		if review.UserID != userID && role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own reviews."})
			return
		}

		if err := db.Delete(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
	}
}

// GET /admin/reviews — full listing for moderation.
func GetAllReviewsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		if err := db.
			Preload("User").
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reviews": reviews})
	}
}
