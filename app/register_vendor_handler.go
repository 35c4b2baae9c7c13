package app

import (
	"burpp/domain"
	"burpp/pkg/events"
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RegisterVendorHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewRegisterVendorHandler(repository Repository, eventPublisher events.Publisher) *RegisterVendorHandler {
	return &RegisterVendorHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type RegisterVendorRequest struct {
	UserID                 string           `json:"-" db:"user_id"`
	BusinessName           string           `json:"businessName" validate:"required" db:"business_name"`
	Bio                    *string          `json:"bio" db:"bio"`
	ZipCode                string           `json:"zipCode" validate:"required" db:"zip_code"`
	OffersVirtualServices  bool             `json:"offersVirtualServices" db:"offers_virtual_services"`
	OffersInPersonServices bool             `json:"offersInPersonServices" db:"offers_in_person_services"`
	Latitude               *float64         `json:"latitude" validate:"omitempty,latitude" db:"latitude"`
	Longitude              *float64         `json:"longitude" validate:"omitempty,longitude" db:"longitude"`
	ServiceRadius          *float64         `json:"serviceRadius" validate:"omitempty,gt=0" db:"service_radius"`
	ServiceCategories      []string         `json:"serviceCategories" validate:"required,min=1,dive,required"`
	HourlyRate             *decimal.Decimal `json:"hourlyRate" db:"hourly_rate"`
}

type RegisterVendorResponse struct {
	Vendor domain.VendorProfile `json:"vendor"`
}

func (h RegisterVendorHandler) Handle(ctx context.Context, req *RegisterVendorRequest) (*RegisterVendorResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"vendor.register.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"vendor.register.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	userID := ctx.Value("UserID").(string)
	req.UserID = userID

	if _, err := h.repository.GetVendorByUserID(ctx, userID); err == nil {
		return nil, httperror.Conflict(
			"vendor.register.already_exists",
			"A vendor profile already exists for this user",
			nil,
		)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, httperror.InternalServerError(
			"vendor.register.lookup_failed",
			"Failed to check existing vendor profile",
			nil,
		)
	}

	vendor, err := h.repository.CreateVendor(ctx, req)
	if err != nil {
		return nil, httperror.InternalServerError(
			"vendor.register.create_failed",
			"An error occurred while creating the vendor profile",
			[]string{
				err.Error(),
			},
		)
	}

	h.publishEvent(ctx, vendor)

	return &RegisterVendorResponse{
		Vendor: vendor,
	}, nil
}

func (h RegisterVendorHandler) publishEvent(ctx context.Context, vendor domain.VendorProfile) {
	if h.eventPublisher != nil {
		eventPayload := events.VendorRegisteredPayload{
			ID:                     vendor.ID,
			UserID:                 vendor.UserID,
			BusinessName:           vendor.BusinessName,
			ZipCode:                vendor.ZipCode,
			OffersVirtualServices:  vendor.OffersVirtualServices,
			OffersInPersonServices: vendor.OffersInPersonServices,
			ServiceCategories:      vendor.ServiceCategories,
			HourlyRate:             vendor.HourlyRate,
			CreatedAt:              vendor.CreatedAt,
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "burpp",
		}

		event := events.NewEvent(
			events.VendorRegisteredEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.VendorExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish vendor.registered event",
				zap.String("vendorId", vendor.ID),
				zap.Error(err),
			)
		}
	}
}
