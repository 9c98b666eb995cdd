package models

import "time"

// FinancialEntry is a single ledger row. Kind is "income" or "expense",
// Status is "pending" or "paid". Amounts are integer minor units.
type FinancialEntry struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Description string    `gorm:"size:255;not null" json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Kind        string    `gorm:"size:20;not null" json:"kind"`
	Status      string    `gorm:"size:20;default:'pending'" json:"status"`
	Reference   string    `gorm:"size:64;uniqueIndex" json:"reference"`
	OccurredAt  time.Time `json:"occurred_at"`

	AppointmentID *uint   `json:"appointment_id,omitempty"`
	PaymentURL    *string `gorm:"size:512" json:"payment_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
