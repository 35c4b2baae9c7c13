package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
)

// ListVendorsHandler serves the admin back-office listing, which includes
// unapproved profiles.
type ListVendorsHandler struct {
	repository Repository
}

func NewListVendorsHandler(repository Repository) *ListVendorsHandler {
	return &ListVendorsHandler{
		repository: repository,
	}
}

type ListVendorsRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

type ListVendorsResponse struct {
	Vendors    []domain.VendorProfile `json:"vendors"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalItems int                    `json:"totalItems"`
	TotalPages int                    `json:"totalPages"`
}

func (h ListVendorsHandler) Handle(ctx context.Context, req *ListVendorsRequest) (*ListVendorsResponse, error) {
	page := max(req.Page, 1)
	pageSize := max(req.PageSize, 10)

	offset := (page - 1) * pageSize

	vendors, err := h.repository.GetVendors(ctx, pageSize, offset)
	if err != nil {
		return nil, httperror.InternalServerError(
			"vendor.index.failed",
			"Failed to retrieve vendors",
			nil,
		)
	}

	totalItems, err := h.repository.CountVendors(ctx)
	if err != nil {
		return nil, httperror.InternalServerError(
			"vendor.count_vendors.failed",
			"Failed to count vendors",
			nil,
		)
	}

	totalPages := (totalItems + pageSize - 1) / pageSize

	return &ListVendorsResponse{
		Vendors:    vendors,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}
