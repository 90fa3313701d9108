package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        string `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"not null;uniqueIndex:idx_review_user_product" json:"userId"`
	User      User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ProductID string `gorm:"not null;uniqueIndex:idx_review_user_product" json:"productId"`
	Rating    int    `gorm:"not null" json:"rating"` // 1..5
	Comment   string `gorm:"not null" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
