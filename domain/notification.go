package domain

import "time"

type Notification struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Kind      string    `json:"kind" db:"kind"`
	Payload   string    `json:"payload" db:"payload"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Notification kinds written by the worker from consumed events.
const (
	NotificationVendorApproved  = "vendor_approved"
	NotificationMessageReceived = "message_received"
	NotificationReviewReceived  = "review_received"
)
