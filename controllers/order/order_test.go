package orderControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/models"
	"github.com/gy-putra/tamago/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{AuthID: "auth-" + t.Name(), Email: t.Name() + "@example.com", Name: "Tester"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock *int) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Stock: stock, Image: "https://img.example/" + name}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func currentStock(t *testing.T, db *gorm.DB, id string) *int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Stock
}

func TestPlaceOrderSuccess(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Air Max", 100000, testutil.IntPtr(5))

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 3, Price: 100000}},
		ShippingAddress: "Jl. Sudirman 1, Jakarta",
		TotalPrice:      300000,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 300000.0, order.TotalPrice)

	// stock decremented by exactly the ordered quantity
	assert.Equal(t, 2, *currentStock(t, db, product.ID))

	// exactly one order item per input line
	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 100000.0, items[0].Price)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Air Max", 100000, testutil.IntPtr(5))

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 6, Price: 100000}},
		ShippingAddress: "Jl. Sudirman 1, Jakarta",
		TotalPrice:      600000,
	})
	require.Error(t, err)
	assert.IsType(t, ValidationError{}, err)

	assert.Equal(t, 5, *currentStock(t, db, product.ID))

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count, "no partial order state may be visible")
}

func TestPlaceOrderPriceMismatch(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Air Max", 100000, testutil.IntPtr(5))

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1, Price: 99999.5}},
		ShippingAddress: "Jl. Sudirman 1, Jakarta",
		TotalPrice:      99999.5,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Price mismatch")
	assert.Equal(t, 5, *currentStock(t, db, product.ID))
}

func TestPlaceOrderPriceWithinTolerance(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Air Max", 100000, testutil.IntPtr(5))

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1, Price: 100000.009}},
		ShippingAddress: "Jl. Sudirman 1, Jakarta",
		TotalPrice:      100000,
	})
	assert.NoError(t, err)
}

func TestPlaceOrderValidationSequence(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Air Max", 100000, testutil.IntPtr(5))

	tests := []struct {
		name    string
		req     PlaceOrderRequest
		wantErr string
	}{
		{
			name:    "empty items",
			req:     PlaceOrderRequest{ShippingAddress: "somewhere", TotalPrice: 1},
			wantErr: "Items are required",
		},
		{
			name: "blank shipping address",
			req: PlaceOrderRequest{
				Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1, Price: 100000}},
				ShippingAddress: "   ",
				TotalPrice:      100000,
			},
			wantErr: "Shipping address is required",
		},
		{
			name: "non-positive total",
			req: PlaceOrderRequest{
				Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1, Price: 100000}},
				ShippingAddress: "somewhere",
			},
			wantErr: "Total price is required",
		},
		{
			name: "unknown product",
			req: PlaceOrderRequest{
				Items:           []OrderItemInput{{ProductID: "nope", Quantity: 1, Price: 100000}},
				ShippingAddress: "somewhere",
				TotalPrice:      100000,
			},
			wantErr: "One or more products not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlaceOrder(db, user.ID, tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Equal(t, 5, *currentStock(t, db, product.ID), "failed validations must not touch stock")
}

func TestPlaceOrderUnlimitedStock(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Made To Order", 250000, nil)

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 100, Price: 250000}},
		ShippingAddress: "Jl. Sudirman 1, Jakarta",
		TotalPrice:      25000000,
	})
	require.NoError(t, err)

	assert.Nil(t, currentStock(t, db, product.ID), "unlimited stock stays unlimited")
}

func TestPlaceOrderSequentialExhaustion(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Air Max", 100000, testutil.IntPtr(5))

	req := PlaceOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 3, Price: 100000}},
		ShippingAddress: "Jl. Sudirman 1, Jakarta",
		TotalPrice:      300000,
	}

	_, err := PlaceOrder(db, user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 2, *currentStock(t, db, product.ID))

	// second identical order now exceeds the remaining stock
	_, err = PlaceOrder(db, user.ID, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient stock")
	assert.Equal(t, 2, *currentStock(t, db, product.ID))
}

// -------- handler level --------

func newOrderRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	authed.POST("/orders", PlaceOrderHandler(db))
	authed.GET("/orders", GetUserOrdersHandler(db))
	authed.PATCH("/admin/orders/:orderID", UpdateOrderStatusHandler(db))
	return r
}

func TestPlaceOrderHandlerUnauthenticated(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := newOrderRouter(db, "")

	body, _ := json.Marshal(PlaceOrderRequest{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceOrderHandlerCreated(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Air Max", 100000, testutil.IntPtr(5))
	r := newOrderRouter(db, user.ID)

	body, _ := json.Marshal(PlaceOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 2, Price: 100000}},
		ShippingAddress: "Jl. Sudirman 1, Jakarta",
		TotalPrice:      200000,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Order   struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "pending", resp.Order.Status)
	assert.NotEmpty(t, resp.Order.ID)
}

func TestGetUserOrdersScopedToCaller(t *testing.T) {
	db := testutil.NewTestDB(t)
	alice := seedUser(t, db)
	bob := models.User{AuthID: "auth-bob", Email: "bob@example.com"}
	require.NoError(t, db.Create(&bob).Error)
	product := seedProduct(t, db, "Air Max", 100000, testutil.IntPtr(50))

	for _, u := range []models.User{alice, bob} {
		_, err := PlaceOrder(db, u.ID, PlaceOrderRequest{
			Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1, Price: 100000}},
			ShippingAddress: "somewhere",
			TotalPrice:      100000,
		})
		require.NoError(t, err)
	}

	r := newOrderRouter(db, alice.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, alice.ID, resp.Orders[0].UserID)
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Air Max", 100000, testutil.IntPtr(5))

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1, Price: 100000}},
		ShippingAddress: "somewhere",
		TotalPrice:      100000,
	})
	require.NoError(t, err)

	r := newOrderRouter(db, user.ID)

	patch := func(id, status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(UpdateOrderStatusRequest{Status: status})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/admin/orders/"+id, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, patch(order.ID, "shipped").Code)

	var updated models.Order
	require.NoError(t, db.First(&updated, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	assert.Equal(t, http.StatusBadRequest, patch(order.ID, "teleported").Code)
	assert.Equal(t, http.StatusNotFound, patch("missing-id", "paid").Code)
}
