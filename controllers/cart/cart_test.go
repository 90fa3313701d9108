package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/models"
	"github.com/gy-putra/tamago/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func newCartRouter(db *gorm.DB, rdb *redis.Client, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	r.GET("/cart", GetUserCart(db, rdb))
	r.POST("/cart", UpdateCartItem(db, rdb))
	r.DELETE("/cart/:product_id", DeleteCartItem(rdb))
	r.DELETE("/cart", ClearUserCart(rdb))
	return r
}

func seedCartProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

type cartPayload struct {
	Items []struct {
		Product  models.Product `json:"product"`
		Quantity int            `json:"quantity"`
	} `json:"items"`
}

func TestGetUserCartEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := newCartRouter(db, newTestRedis(t), "user-1")

	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestUpdateCartItemAddThenChangeQuantity(t *testing.T) {
	db := testutil.NewTestDB(t)
	rdb := newTestRedis(t)
	product := seedCartProduct(t, db, "Air Max", 1500000)
	r := newCartRouter(db, rdb, "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", CartItemInput{ProductID: product.ID, Quantity: 2})
	assert.Equal(t, http.StatusCreated, w.Code, "new line is a 201")

	w = doJSON(t, r, http.MethodPost, "/cart", CartItemInput{ProductID: product.ID, Quantity: 5})
	assert.Equal(t, http.StatusOK, w.Code, "quantity change is a 200")

	w = doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp cartPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1, "same product never duplicates a line")
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, "Air Max", resp.Items[0].Product.Name)
}

func TestUpdateCartItemUnknownProduct(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := newCartRouter(db, newTestRedis(t), "user-1")

	w := doJSON(t, r, http.MethodPost, "/cart", CartItemInput{ProductID: "nope", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemRejectsBadQuantity(t *testing.T) {
	db := testutil.NewTestDB(t)
	rdb := newTestRedis(t)
	product := seedCartProduct(t, db, "Samba", 1200000)
	r := newCartRouter(db, rdb, "user-1")

	for name, body := range map[string]any{
		"zero quantity":     gin.H{"productId": product.ID, "quantity": 0},
		"negative quantity": gin.H{"productId": product.ID, "quantity": -3},
		"missing product":   gin.H{"quantity": 1},
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/cart", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetUserCartDropsDeletedProducts(t *testing.T) {
	db := testutil.NewTestDB(t)
	rdb := newTestRedis(t)
	kept := seedCartProduct(t, db, "Jordan 1", 2500000)
	doomed := seedCartProduct(t, db, "Discontinued", 900000)
	r := newCartRouter(db, rdb, "user-1")

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/cart", CartItemInput{ProductID: kept.ID, Quantity: 1}).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/cart", CartItemInput{ProductID: doomed.ID, Quantity: 2}).Code)

	require.NoError(t, db.Delete(&models.Product{}, "id = ?", doomed.ID).Error)

	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp cartPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, kept.ID, resp.Items[0].Product.ID)
}

func TestDeleteCartItem(t *testing.T) {
	db := testutil.NewTestDB(t)
	rdb := newTestRedis(t)
	a := seedCartProduct(t, db, "Gazelle", 1100000)
	b := seedCartProduct(t, db, "Chuck 70", 950000)
	r := newCartRouter(db, rdb, "user-1")

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/cart", CartItemInput{ProductID: a.ID, Quantity: 1}).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/cart", CartItemInput{ProductID: b.ID, Quantity: 1}).Code)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/cart/%s", a.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/cart/%s", a.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "removing an absent line is a 404")

	w = doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp cartPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, b.ID, resp.Items[0].Product.ID)
}

func TestClearUserCart(t *testing.T) {
	db := testutil.NewTestDB(t)
	rdb := newTestRedis(t)
	product := seedCartProduct(t, db, "Air Max", 1500000)
	r := newCartRouter(db, rdb, "user-1")

	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/cart", CartItemInput{ProductID: product.ID, Quantity: 3}).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodDelete, "/cart", nil).Code)

	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp cartPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	rdb := newTestRedis(t)
	product := seedCartProduct(t, db, "Air Max", 1500000)

	alice := newCartRouter(db, rdb, "alice")
	bob := newCartRouter(db, rdb, "bob")

	require.Equal(t, http.StatusCreated, doJSON(t, alice, http.MethodPost, "/cart", CartItemInput{ProductID: product.ID, Quantity: 1}).Code)

	w := doJSON(t, bob, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp cartPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items, "one user's cart never leaks into another's")
}

func TestCartUnauthenticated(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := newCartRouter(db, newTestRedis(t), "")

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/cart", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodPost, "/cart", CartItemInput{ProductID: "x", Quantity: 1}).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodDelete, "/cart", nil).Code)
}
