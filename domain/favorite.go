package domain

import "time"

type Favorite struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	VendorID  string    `json:"vendor_id" db:"vendor_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
