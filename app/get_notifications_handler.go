package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
)

type GetNotificationsHandler struct {
	repository Repository
}

func NewGetNotificationsHandler(repository Repository) *GetNotificationsHandler {
	return &GetNotificationsHandler{
		repository: repository,
	}
}

type GetNotificationsRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

type GetNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"pageSize"`
	TotalItems    int                   `json:"totalItems"`
	TotalPages    int                   `json:"totalPages"`
}

func (h *GetNotificationsHandler) Handle(ctx context.Context, req *GetNotificationsRequest) (*GetNotificationsResponse, error) {
	page := max(req.Page, 1)
	pageSize := max(req.PageSize, 20)

	offset := (page - 1) * pageSize

	userID := ctx.Value("UserID").(string)

	notifications, err := h.repository.GetUserNotifications(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"notifications.index.failed",
			"Failed to retrieve notifications",
			nil,
		)
	}

	totalItems, err := h.repository.CountUserNotifications(ctx, userID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"notifications.count.failed",
			"Failed to count notifications",
			nil,
		)
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	return &GetNotificationsResponse{
		Notifications: notifications,
		Page:          page,
		PageSize:      pageSize,
		TotalItems:    totalItems,
		TotalPages:    totalPages,
	}, nil
}
