package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
)

type GetReviewsHandler struct {
	repository Repository
}

func NewGetReviewsHandler(repository Repository) *GetReviewsHandler {
	return &GetReviewsHandler{
		repository: repository,
	}
}

type GetReviewsRequest struct {
	VendorID string `params:"id"`
	Page     int    `query:"page"`
	PageSize int    `query:"limit"`
}

type GetReviewsResponse struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
	Page          int             `json:"page"`
	PageSize      int             `json:"pageSize"`
	TotalItems    int             `json:"totalItems"`
	TotalPages    int             `json:"totalPages"`
}

func (h *GetReviewsHandler) Handle(ctx context.Context, req *GetReviewsRequest) (*GetReviewsResponse, error) {
	page := max(req.Page, 1)
	pageSize := max(req.PageSize, 10)

	offset := (page - 1) * pageSize

	reviews, err := h.repository.GetVendorReviews(ctx, req.VendorID, pageSize, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"reviews.index.failed",
			"Failed to retrieve reviews",
			nil,
		)
	}

	totalItems, err := h.repository.CountVendorReviews(ctx, req.VendorID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"reviews.count_reviews.failed",
			"Failed to count reviews",
			nil,
		)
	}

	rating, err := h.repository.GetVendorAverageRating(ctx, req.VendorID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"reviews.rating.failed",
			"Failed to compute average rating",
			nil,
		)
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	return &GetReviewsResponse{
		Reviews:       reviews,
		AverageRating: rating,
		Page:          page,
		PageSize:      pageSize,
		TotalItems:    totalItems,
		TotalPages:    totalPages,
	}, nil
}
