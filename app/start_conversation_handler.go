package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"errors"
)

type StartConversationHandler struct {
	repository Repository
}

func NewStartConversationHandler(repository Repository) *StartConversationHandler {
	return &StartConversationHandler{
		repository: repository,
	}
}

type StartConversationRequest struct {
	VendorID string `json:"vendorId" validate:"required"`
}

type StartConversationResponse struct {
	Conversation domain.Conversation `json:"conversation"`
}

// Handle returns the existing conversation between the two parties when one
// already exists, so repeated "message this vendor" clicks do not fork
// threads.
func (h StartConversationHandler) Handle(ctx context.Context, req *StartConversationRequest) (*StartConversationResponse, error) {
	vendor, err := h.repository.GetVendor(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"conversation.start.vendor_not_found",
				"Vendor not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"conversation.start.failed",
			"Failed to retrieve vendor",
			nil,
		)
	}

	userID := ctx.Value("UserID").(string)
	if vendor.UserID == userID {
		return nil, httperror.BadRequest(
			"conversation.start.self",
			"You cannot start a conversation with yourself",
			nil,
		)
	}

	existing, err := h.repository.FindConversation(ctx, userID, vendor.ID)
	if err == nil {
		return &StartConversationResponse{Conversation: existing}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, httperror.InternalServerError(
			"conversation.start.lookup_failed",
			"Failed to check existing conversation",
			nil,
		)
	}

	conversation, err := h.repository.CreateConversation(ctx, userID, vendor.ID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"conversation.start.create_failed",
			"An error occurred while starting the conversation",
			nil,
		)
	}

	return &StartConversationResponse{
		Conversation: conversation,
	}, nil
}
