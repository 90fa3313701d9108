package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wishlist is a per-user saved-for-later entry. One row per (user, product).
type Wishlist struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	UserID    string  `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"userId"`
	ProductID string  `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"productId"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
