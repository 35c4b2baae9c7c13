package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exchanges
const (
	VendorExchange    = "burpp.vendor"
	MessagingExchange = "burpp.messaging"
)

// Event names
const (
	VendorRegisteredEvent = "vendor.registered"
	VendorApprovedEvent   = "vendor.approved"
	ReviewCreatedEvent    = "vendor.review.created"
	FavoriteAddedEvent    = "vendor.favorite.added"
	MessageCreatedEvent   = "message.created"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

// VendorRegisteredPayload represents the payload for vendor.registered event
type VendorRegisteredPayload struct {
	ID                     string           `json:"id"`
	UserID                 string           `json:"userId"`
	BusinessName           string           `json:"businessName"`
	ZipCode                string           `json:"zipCode"`
	OffersVirtualServices  bool             `json:"offersVirtualServices"`
	OffersInPersonServices bool             `json:"offersInPersonServices"`
	ServiceCategories      []string         `json:"serviceCategories"`
	HourlyRate             *decimal.Decimal `json:"hourlyRate"`
	CreatedAt              time.Time        `json:"createdAt"`
}

// VendorApprovedPayload represents the payload for vendor.approved event
type VendorApprovedPayload struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	BusinessName string    `json:"businessName"`
	Approved     bool      `json:"approved"`
	ApprovedAt   time.Time `json:"approvedAt"`
}

// ReviewCreatedPayload represents the payload for vendor.review.created event
type ReviewCreatedPayload struct {
	ID           string    `json:"id"`
	VendorID     string    `json:"vendorId"`
	VendorUserID string    `json:"vendorUserId"`
	CustomerID   string    `json:"customerId"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FavoriteAddedPayload represents the payload for vendor.favorite.added event
type FavoriteAddedPayload struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	VendorID  string    `json:"vendorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageCreatedPayload represents the payload for message.created event
type MessageCreatedPayload struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	RecipientID    string    `json:"recipientId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}
