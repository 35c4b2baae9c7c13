package domain

import "time"

type Review struct {
	ID         string    `json:"id" db:"id"`
	VendorID   string    `json:"vendor_id" db:"vendor_id"`
	CustomerID string    `json:"customer_id" db:"customer_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    *string   `json:"comment" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
