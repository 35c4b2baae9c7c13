package app

import (
	"burpp/domain"
	"context"
)

type Repository interface {
	Close() error

	CreateVendor(ctx context.Context, req *RegisterVendorRequest) (domain.VendorProfile, error)
	GetVendor(ctx context.Context, id string) (domain.VendorProfile, error)
	GetVendorByUserID(ctx context.Context, userID string) (domain.VendorProfile, error)
	UpdateVendor(ctx context.Context, vendor domain.VendorProfile) (domain.VendorProfile, error)
	SetVendorApproval(ctx context.Context, id string, approved bool) (domain.VendorProfile, error)
	GetApprovedVendors(ctx context.Context, categoryID string) ([]domain.VendorProfile, error)
	GetApprovedVendorsPage(ctx context.Context, categoryID string, limit, offset int) ([]domain.VendorProfile, error)
	CountApprovedVendors(ctx context.Context, categoryID string) (int, error)
	GetVendors(ctx context.Context, limit, offset int) ([]domain.VendorProfile, error)
	CountVendors(ctx context.Context) (int, error)

	GetCategories(ctx context.Context, limit, offset int) ([]domain.Category, error)
	CountCategories(ctx context.Context) (int, error)
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateReview(ctx context.Context, vendorID, customerID string, rating int, comment *string) (domain.Review, error)
	GetVendorReviews(ctx context.Context, vendorID string, limit, offset int) ([]domain.Review, error)
	CountVendorReviews(ctx context.Context, vendorID string) (int, error)
	GetVendorAverageRating(ctx context.Context, vendorID string) (float64, error)
	GetCustomerReview(ctx context.Context, vendorID, customerID string) (domain.Review, error)

	CreateConversation(ctx context.Context, customerID, vendorID string) (domain.Conversation, error)
	GetConversation(ctx context.Context, id string) (domain.Conversation, error)
	FindConversation(ctx context.Context, customerID, vendorID string) (domain.Conversation, error)
	GetUserConversations(ctx context.Context, userID string, limit, offset int) ([]domain.Conversation, error)
	CountUserConversations(ctx context.Context, userID string) (int, error)
	CreateMessage(ctx context.Context, conversationID, senderID, content string) (domain.Message, error)
	GetConversationMessages(ctx context.Context, conversationID string, limit, offset int) ([]domain.Message, error)
	CountConversationMessages(ctx context.Context, conversationID string) (int, error)
	MarkConversationRead(ctx context.Context, conversationID, userID string) error

	CreateFavorite(ctx context.Context, userID, vendorID string) (domain.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, vendorID string) error
	GetUserFavorites(ctx context.Context, userID string, limit, offset int) ([]domain.VendorProfile, error)
	CountUserFavorites(ctx context.Context, userID string) (int, error)

	CreateNotification(ctx context.Context, userID, kind, payload string) (domain.Notification, error)
	GetUserNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error)
	CountUserNotifications(ctx context.Context, userID string) (int, error)
}
