package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"errors"
)

type GetVendorHandler struct {
	repository Repository
}

func NewGetVendorHandler(repository Repository) *GetVendorHandler {
	return &GetVendorHandler{
		repository: repository,
	}
}

type GetVendorRequest struct {
	VendorID string `params:"id"`
}

type GetVendorResponse struct {
	Vendor        domain.VendorProfile `json:"vendor"`
	AverageRating float64              `json:"averageRating"`
	ReviewCount   int                  `json:"reviewCount"`
}

func (h GetVendorHandler) Handle(ctx context.Context, req *GetVendorRequest) (*GetVendorResponse, error) {
	vendor, err := h.repository.GetVendor(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"vendor.show.not_found",
				"Vendor not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"vendor.show.failed",
			"Failed to retrieve vendor",
			nil,
		)
	}

	// Unapproved profiles are only visible to their owner.
	if !vendor.AdminApproved {
		userID, _ := ctx.Value("UserID").(string)
		if userID == "" || userID != vendor.UserID {
			return nil, httperror.NotFound(
				"vendor.show.not_found",
				"Vendor not found",
				nil,
			)
		}
	}

	rating, err := h.repository.GetVendorAverageRating(ctx, vendor.ID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"vendor.show.rating_failed",
			"Failed to compute vendor rating",
			nil,
		)
	}

	reviewCount, err := h.repository.CountVendorReviews(ctx, vendor.ID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"vendor.show.review_count_failed",
			"Failed to count vendor reviews",
			nil,
		)
	}

	return &GetVendorResponse{
		Vendor:        vendor,
		AverageRating: rating,
		ReviewCount:   reviewCount,
	}, nil
}
