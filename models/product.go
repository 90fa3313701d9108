package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID            string   `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"not null" json:"name"`
	Price         float64  `gorm:"not null" json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"` // pre-discount price, shown struck through
	Stock         *int     `json:"stock"`                   // nil means unlimited
	SoldCount     int      `json:"soldCount"`
	Description   string   `json:"description"`
	Image         string   `gorm:"not null" json:"image"` // URL; uploads are handled elsewhere
	Reviews       []Review `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasFiniteStock reports whether the product tracks inventory at all.
func (p *Product) HasFiniteStock() bool {
	return p.Stock != nil
}
