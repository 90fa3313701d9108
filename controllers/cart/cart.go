package cartControllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/middleware"
	"github.com/gy-putra/tamago/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Carts live in Redis keyed by user ID. A line holds only productId+quantity;
// the read path joins live product rows so prices are never stale.

type CartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type cartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func loadCart(ctx context.Context, rdb *redis.Client, userID string) (models.Cart, error) {
	var cart models.Cart
	val, err := rdb.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return cart, nil
	}
	if err != nil {
		return cart, err
	}
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func saveCart(ctx context.Context, rdb *redis.Client, userID string, cart models.Cart) error {
	cart.UpdatedAt = time.Now()
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, cartKey(userID), data, 0).Err()
}

// GET /cart
func GetUserCart(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cart, err := loadCart(c.Request.Context(), rdb, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if len(cart.Items) == 0 {
			c.JSON(http.StatusOK, gin.H{"items": []cartLine{}, "updatedAt": cart.UpdatedAt})
			return
		}

		ids := make([]string, 0, len(cart.Items))
		for _, item := range cart.Items {
			ids = append(ids, item.ProductID)
		}

		var products []models.Product
		if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart products"})
			return
		}
		byID := make(map[string]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		// Products deleted since they were carted are silently dropped.
		lines := make([]cartLine, 0, len(cart.Items))
		for _, item := range cart.Items {
			if product, found := byID[item.ProductID]; found {
				lines = append(lines, cartLine{Product: product, Quantity: item.Quantity})
			}
		}

		c.JSON(http.StatusOK, gin.H{"items": lines, "updatedAt": cart.UpdatedAt})
	}
}

// POST /cart
func UpdateCartItem(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		cart, err := loadCart(c.Request.Context(), rdb, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		updated := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == input.ProductID {
				cart.Items[i].Quantity = input.Quantity
				updated = true
				break
			}
		}
		if !updated {
			cart.Items = append(cart.Items, models.CartItem{
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
			})
		}

		if err := saveCart(c.Request.Context(), rdb, userID, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		status := http.StatusOK
		if !updated {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{"items": cart.Items, "updatedAt": cart.UpdatedAt})
	}
}

// DELETE /cart/:product_id
func DeleteCartItem(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		productID := c.Param("product_id")

		cart, err := loadCart(c.Request.Context(), rdb, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(cart.Items) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
			return
		}
		cart.Items = kept

		if err := saveCart(c.Request.Context(), rdb, userID, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// DELETE /cart
func ClearUserCart(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := rdb.Del(c.Request.Context(), cartKey(userID)).Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
