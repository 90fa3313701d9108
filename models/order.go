package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting payment
	OrderStatusPaid      OrderStatus = "paid"      // payment confirmed
	OrderStatusShipped   OrderStatus = "shipped"   // out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // customer received the item
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled before shipping
)

// ParseOrderStatus maps a request string to a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusPaid):
		return OrderStatusPaid, nil
	case string(OrderStatusShipped):
		return OrderStatusShipped, nil
	case string(OrderStatusDelivered):
		return OrderStatusDelivered, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

type Order struct {
	ID              string      `gorm:"primaryKey" json:"id"`
	UserID          string      `gorm:"not null;index" json:"userId"`
	User            User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	TotalPrice      float64     `json:"totalPrice"`
	ShippingAddress string      `json:"shippingAddress"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem snapshots quantity and unit price at purchase time; the live
// product price may change afterwards without touching past orders.
type OrderItem struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"index" json:"orderId"`
	ProductID string  `gorm:"not null" json:"productId"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
