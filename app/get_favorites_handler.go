package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
)

type GetFavoritesHandler struct {
	repository Repository
}

func NewGetFavoritesHandler(repository Repository) *GetFavoritesHandler {
	return &GetFavoritesHandler{
		repository: repository,
	}
}

type GetFavoritesRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

type GetFavoritesResponse struct {
	Vendors    []domain.VendorProfile `json:"vendors"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalItems int                    `json:"totalItems"`
	TotalPages int                    `json:"totalPages"`
}

func (h *GetFavoritesHandler) Handle(ctx context.Context, req *GetFavoritesRequest) (*GetFavoritesResponse, error) {
	page := max(req.Page, 1)
	pageSize := max(req.PageSize, 10)

	offset := (page - 1) * pageSize

	userID := ctx.Value("UserID").(string)

	vendors, err := h.repository.GetUserFavorites(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"favorites.index.failed",
			"Failed to retrieve favorites",
			nil,
		)
	}

	totalItems, err := h.repository.CountUserFavorites(ctx, userID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"favorites.count.failed",
			"Failed to count favorites",
			nil,
		)
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	return &GetFavoritesResponse{
		Vendors:    vendors,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}
