package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/models"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"originalPrice"`
	Stock         *int     `json:"stock"` // omit for unlimited
	Description   string   `json:"description"`
	Image         string   `json:"image" binding:"required"`
}

// CreateProduct adds a product to the catalog. The image is a URL produced by
// the upload service, not a file upload here.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if strings.TrimSpace(input.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		if input.Stock != nil && *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}

		product := models.Product{
			Name:          strings.TrimSpace(input.Name),
			Price:         input.Price,
			OriginalPrice: input.OriginalPrice,
			Stock:         input.Stock,
			Description:   input.Description,
			Image:         input.Image,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
