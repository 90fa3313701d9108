package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/models"
	"gorm.io/gorm"
)

// GetProductByID returns a single product with its rating aggregates and
// reviews (reviewer names included for display).
// URL param: /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		var product models.Product
		if err := db.Preload("Reviews").Preload("Reviews.User").First(&product, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		reviews := product.Reviews
		c.JSON(http.StatusOK, gin.H{
			"product": models.WithStats(product),
			"reviews": reviews,
		})
	}
}
