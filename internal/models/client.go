package models

import "time"

// Client has no login; it belongs to a salon and is referenced by
// appointments and financial entries.
type Client struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name   string  `gorm:"size:100;not null" json:"name"`
	Phone  string  `gorm:"size:20" json:"phone"`
	Email  string  `gorm:"size:100" json:"email"`
	Notes  *string `gorm:"size:255" json:"notes,omitempty"`
	Gender *string `gorm:"size:20" json:"gender,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
