package models

import "time"

// Cart lives in Redis as a JSON document keyed by user ID, not in Postgres.
// Lines carry only the product reference; product detail is joined at read time
// so the cart never shows a stale price.
type Cart struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
