package app

import (
	"burpp/domain"
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type UpdateVendorHandler struct {
	repository Repository
}

func NewUpdateVendorHandler(repository Repository) *UpdateVendorHandler {
	return &UpdateVendorHandler{
		repository: repository,
	}
}

// UpdateVendorRequest carries named optional fields; only non-nil fields are
// applied. Approval state is deliberately absent, it is admin-only.
type UpdateVendorRequest struct {
	VendorID string `params:"id" validate:"required"`

	BusinessName           *string          `json:"businessName" validate:"omitempty,min=1"`
	Bio                    *string          `json:"bio"`
	ZipCode                *string          `json:"zipCode" validate:"omitempty,min=1"`
	OffersVirtualServices  *bool            `json:"offersVirtualServices"`
	OffersInPersonServices *bool            `json:"offersInPersonServices"`
	Latitude               *float64         `json:"latitude" validate:"omitempty,latitude"`
	Longitude              *float64         `json:"longitude" validate:"omitempty,longitude"`
	ServiceRadius          *float64         `json:"serviceRadius" validate:"omitempty,gt=0"`
	ServiceCategories      []string         `json:"serviceCategories" validate:"omitempty,min=1,dive,required"`
	HourlyRate             *decimal.Decimal `json:"hourlyRate"`
}

type UpdateVendorResponse struct {
	Vendor domain.VendorProfile `json:"vendor"`
}

func (h UpdateVendorHandler) Handle(ctx context.Context, req *UpdateVendorRequest) (*UpdateVendorResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"vendor.update.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"vendor.update.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	vendor, err := h.repository.GetVendor(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"vendor.update.not_found",
				"Vendor not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"vendor.update.failed",
			"Failed to retrieve vendor",
			nil,
		)
	}

	userID := ctx.Value("UserID").(string)
	if vendor.UserID != userID {
		return nil, httperror.Forbidden(
			"vendor.update.forbidden",
			"You are not authorized to update this vendor profile",
			nil,
		)
	}

	applyVendorUpdate(&vendor, req)
	vendor.UpdatedAt = time.Now()

	updated, err := h.repository.UpdateVendor(ctx, vendor)
	if err != nil {
		return nil, httperror.InternalServerError(
			"vendor.update.update_failed",
			"An error occurred while updating the vendor profile",
			nil,
		)
	}

	return &UpdateVendorResponse{
		Vendor: updated,
	}, nil
}

func applyVendorUpdate(vendor *domain.VendorProfile, req *UpdateVendorRequest) {
	if req.BusinessName != nil {
		vendor.BusinessName = *req.BusinessName
	}
	if req.Bio != nil {
		vendor.Bio = req.Bio
	}
	if req.ZipCode != nil {
		vendor.ZipCode = *req.ZipCode
	}
	if req.OffersVirtualServices != nil {
		vendor.OffersVirtualServices = *req.OffersVirtualServices
	}
	if req.OffersInPersonServices != nil {
		vendor.OffersInPersonServices = *req.OffersInPersonServices
	}
	if req.Latitude != nil {
		vendor.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		vendor.Longitude = req.Longitude
	}
	if req.ServiceRadius != nil {
		vendor.ServiceRadius = req.ServiceRadius
	}
	if req.ServiceCategories != nil {
		vendor.ServiceCategories = req.ServiceCategories
	}
	if req.HourlyRate != nil {
		vendor.HourlyRate = req.HourlyRate
	}
}
