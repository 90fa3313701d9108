package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/models"
	"gorm.io/gorm"
)

// DeleteProduct removes a product along with its reviews and wishlist entries.
// Order items keep their product reference as a historical snapshot.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", id).Delete(&models.Wishlist{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
