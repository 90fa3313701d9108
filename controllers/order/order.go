package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/middleware"
	"github.com/gy-putra/tamago/models"
	"gorm.io/gorm"
)

// priceTolerance bounds how far a client-supplied unit price may drift from
// the stored price before the order is rejected as tampered.
const priceTolerance = 0.01

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price"`
}

type PlaceOrderRequest struct {
	Items           []OrderItemInput `json:"items"`
	ShippingAddress string           `json:"shippingAddress"`
	TotalPrice      float64          `json:"totalPrice"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ValidationError marks failures the client caused; handlers map it to 400.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string { return e.msg }

func invalidf(format string, args ...interface{}) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}

// -------- Core Logic --------

// PlaceOrder validates the request against the live catalog and commits the
// order, its items, and the stock decrements as one transaction. Nothing is
// written unless every step succeeds.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, invalidf("Items are required")
	}

	address := strings.TrimSpace(req.ShippingAddress)
	if address == "" {
		return nil, invalidf("Shipping address is required")
	}

	if req.TotalPrice <= 0 {
		return nil, invalidf("Total price is required and must be greater than 0")
	}

	// Batch-fetch every referenced product. A smaller result set means at
	// least one unknown id.
	idSet := make(map[string]struct{}, len(req.Items))
	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if _, seen := idSet[item.ProductID]; !seen {
			idSet[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, invalidf("One or more products not found")
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range req.Items {
		product := byID[item.ProductID]

		if product.HasFiniteStock() && item.Quantity > *product.Stock {
			return nil, invalidf("Insufficient stock for %s. Available: %d, Requested: %d",
				product.Name, *product.Stock, item.Quantity)
		}

		if math.Abs(item.Price-product.Price) > priceTolerance {
			return nil, invalidf("Price mismatch for %s", product.Name)
		}
	}

	order := models.Order{
		UserID:          userID,
		TotalPrice:      req.TotalPrice,
		ShippingAddress: address,
		Status:          models.OrderStatusPending,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Conditional decrement: the WHERE guard re-checks stock inside the
		// transaction, so two concurrent orders cannot oversell. Zero rows
		// affected means another order drained the stock first.
		for _, item := range req.Items {
			product := byID[item.ProductID]
			if !product.HasFiniteStock() {
				continue
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return invalidf("Insufficient stock for %s", product.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	broadcastNewOrder(order)
	return &order, nil
}

// -------- Handlers --------

// POST /orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			var verr ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
				return
			}
			log.Printf("❌ Failed to place order for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"order": gin.H{
				"id":         order.ID,
				"totalPrice": order.TotalPrice,
				"status":     order.Status,
				"createdAt":  order.CreatedAt,
			},
		})
	}
}

// GET /orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			log.Printf("❌ Failed to fetch orders for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			log.Printf("❌ Failed to fetch orders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GET /admin/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var order models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			log.Printf("❌ Failed to fetch order %s: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// PATCH /admin/orders/:orderID
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}

		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
		if res.Error != nil {
			log.Printf("❌ Failed to update order %s: %v", orderID, res.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
