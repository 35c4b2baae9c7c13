package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
)

type GetConversationsHandler struct {
	repository Repository
}

func NewGetConversationsHandler(repository Repository) *GetConversationsHandler {
	return &GetConversationsHandler{
		repository: repository,
	}
}

type GetConversationsRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

type GetConversationsResponse struct {
	Conversations []domain.Conversation `json:"conversations"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"pageSize"`
	TotalItems    int                   `json:"totalItems"`
	TotalPages    int                   `json:"totalPages"`
}

func (h *GetConversationsHandler) Handle(ctx context.Context, req *GetConversationsRequest) (*GetConversationsResponse, error) {
	page := max(req.Page, 1)
	pageSize := max(req.PageSize, 10)

	offset := (page - 1) * pageSize

	userID := ctx.Value("UserID").(string)

	conversations, err := h.repository.GetUserConversations(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"conversations.index.failed",
			"Failed to retrieve conversations",
			nil,
		)
	}

	totalItems, err := h.repository.CountUserConversations(ctx, userID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"conversations.count.failed",
			"Failed to count conversations",
			nil,
		)
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	return &GetConversationsResponse{
		Conversations: conversations,
		Page:          page,
		PageSize:      pageSize,
		TotalItems:    totalItems,
		TotalPages:    totalPages,
	}, nil
}
