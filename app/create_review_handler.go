package app

import (
	"burpp/domain"
	"burpp/pkg/events"
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type CreateReviewHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewCreateReviewHandler(repository Repository, eventPublisher events.Publisher) *CreateReviewHandler {
	return &CreateReviewHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type CreateReviewRequest struct {
	VendorID string  `params:"id" validate:"required"`
	Rating   int     `json:"rating" validate:"required,min=1,max=5"`
	Comment  *string `json:"comment"`
}

type CreateReviewResponse struct {
	Review domain.Review `json:"review"`
}

func (h CreateReviewHandler) Handle(ctx context.Context, req *CreateReviewRequest) (*CreateReviewResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"review.create.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"review.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	vendor, err := h.repository.GetVendor(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"review.create.vendor_not_found",
				"Vendor not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"review.create.failed",
			"Failed to retrieve vendor",
			nil,
		)
	}

	userID := ctx.Value("UserID").(string)
	if vendor.UserID == userID {
		return nil, httperror.Forbidden(
			"review.create.own_profile",
			"Vendors cannot review their own profile",
			nil,
		)
	}

	if _, err := h.repository.GetCustomerReview(ctx, vendor.ID, userID); err == nil {
		return nil, httperror.Conflict(
			"review.create.already_reviewed",
			"You have already reviewed this vendor",
			nil,
		)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, httperror.InternalServerError(
			"review.create.lookup_failed",
			"Failed to check existing review",
			nil,
		)
	}

	review, err := h.repository.CreateReview(ctx, vendor.ID, userID, req.Rating, req.Comment)
	if err != nil {
		return nil, httperror.InternalServerError(
			"review.create.create_failed",
			"An error occurred while creating the review",
			nil,
		)
	}

	h.publishEvent(ctx, review, vendor)

	return &CreateReviewResponse{
		Review: review,
	}, nil
}

func (h CreateReviewHandler) publishEvent(ctx context.Context, review domain.Review, vendor domain.VendorProfile) {
	if h.eventPublisher != nil {
		eventPayload := events.ReviewCreatedPayload{
			ID:           review.ID,
			VendorID:     review.VendorID,
			VendorUserID: vendor.UserID,
			CustomerID:   review.CustomerID,
			Rating:       review.Rating,
			CreatedAt:    review.CreatedAt,
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "burpp",
		}

		event := events.NewEvent(
			events.ReviewCreatedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.VendorExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish vendor.review.created event",
				zap.String("reviewId", review.ID),
				zap.Error(err),
			)
		}
	}
}
