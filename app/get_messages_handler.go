package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"
)

type GetMessagesHandler struct {
	repository Repository
}

func NewGetMessagesHandler(repository Repository) *GetMessagesHandler {
	return &GetMessagesHandler{
		repository: repository,
	}
}

type GetMessagesRequest struct {
	ConversationID string `params:"id"`
	Page           int    `query:"page"`
	PageSize       int    `query:"limit"`
}

type GetMessagesResponse struct {
	Messages   []domain.Message `json:"messages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
}

func (h *GetMessagesHandler) Handle(ctx context.Context, req *GetMessagesRequest) (*GetMessagesResponse, error) {
	page := max(req.Page, 1)
	pageSize := max(req.PageSize, 50)

	offset := (page - 1) * pageSize

	conversation, err := h.repository.GetConversation(ctx, req.ConversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"messages.index.conversation_not_found",
				"Conversation not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"messages.index.failed",
			"Failed to retrieve conversation",
			nil,
		)
	}

	userID := ctx.Value("UserID").(string)
	if err := h.requireParticipant(ctx, conversation, userID); err != nil {
		return nil, err
	}

	messages, err := h.repository.GetConversationMessages(ctx, conversation.ID, pageSize, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"messages.index.failed",
			"Failed to retrieve messages",
			nil,
		)
	}

	totalItems, err := h.repository.CountConversationMessages(ctx, conversation.ID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"messages.count.failed",
			"Failed to count messages",
			nil,
		)
	}

	// Reading the thread clears the unread flag for this user. Best-effort.
	if err := h.repository.MarkConversationRead(ctx, conversation.ID, userID); err != nil {
		zap.L().Warn("Failed to mark conversation read",
			zap.String("conversationId", conversation.ID),
			zap.Error(err),
		)
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	return &GetMessagesResponse{
		Messages:   messages,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

func (h *GetMessagesHandler) requireParticipant(ctx context.Context, conversation domain.Conversation, userID string) error {
	if conversation.CustomerID == userID {
		return nil
	}

	vendor, err := h.repository.GetVendor(ctx, conversation.VendorID)
	if err != nil {
		return httperror.InternalServerError(
			"messages.index.vendor_lookup_failed",
			"Failed to resolve conversation participants",
			nil,
		)
	}
	if vendor.UserID == userID {
		return nil
	}

	return httperror.Forbidden(
		"messages.index.forbidden",
		"You are not a participant in this conversation",
		nil,
	)
}
