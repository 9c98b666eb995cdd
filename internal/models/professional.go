package models

import "time"

// Professional is a bookable staff member. Login accounts live in User;
// a professional may exist without one.
type Professional struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name      string  `gorm:"size:100;not null" json:"name"`
	Email     string  `gorm:"size:100" json:"email"`
	Phone     string  `gorm:"size:20" json:"phone"`
	Specialty string  `gorm:"size:50" json:"specialty"`
	ImageURL  *string `gorm:"size:255" json:"image_url,omitempty"`
	Active    bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
