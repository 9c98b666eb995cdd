package models

import "time"

// Product is a retail item sold over the counter. Prices are stored in
// integer minor units (cents); display conversion happens at the form
// boundary, never here.
type Product struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	PriceCents  int64   `json:"price_cents"`
	StockQty    int     `gorm:"default:0" json:"stock_qty"`
	ImageURL    *string `gorm:"size:255" json:"image_url,omitempty"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
