package productcontroller

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/models"
	"gorm.io/gorm"
)

// GetProducts lists the catalog with rating aggregates.
// Query param sort_by: newest (default) | price_asc | rating_desc
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sortBy := c.DefaultQuery("sort_by", "newest")

		var products []models.Product
		if err := db.Preload("Reviews").Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		out := make([]models.ProductWithStats, 0, len(products))
		for _, p := range products {
			out = append(out, models.WithStats(p))
		}

		switch sortBy {
		case "price_asc":
			sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
		case "rating_desc":
			sort.SliceStable(out, func(i, j int) bool { return out[i].AverageRating > out[j].AverageRating })
		case "newest":
			// already newest-first from the query
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by"})
			return
		}

		c.JSON(http.StatusOK, out)
	}
}
