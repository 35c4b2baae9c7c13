package app

import (
	"burpp/domain"
	"burpp/pkg/events"
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
)

type ApproveVendorHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewApproveVendorHandler(repository Repository, eventPublisher events.Publisher) *ApproveVendorHandler {
	return &ApproveVendorHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type ApproveVendorRequest struct {
	VendorID string `params:"id"`
	Approved bool   `json:"approved"`
}

type ApproveVendorResponse struct {
	Vendor domain.VendorProfile `json:"vendor"`
}

func (h ApproveVendorHandler) Handle(ctx context.Context, req *ApproveVendorRequest) (*ApproveVendorResponse, error) {
	vendor, err := h.repository.SetVendorApproval(ctx, req.VendorID, req.Approved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"vendor.approve.not_found",
				"Vendor not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"vendor.approve.failed",
			"Failed to update vendor approval",
			nil,
		)
	}

	if req.Approved {
		h.publishEvent(ctx, vendor)
	}

	return &ApproveVendorResponse{
		Vendor: vendor,
	}, nil
}

func (h ApproveVendorHandler) publishEvent(ctx context.Context, vendor domain.VendorProfile) {
	if h.eventPublisher != nil {
		eventPayload := events.VendorApprovedPayload{
			ID:           vendor.ID,
			UserID:       vendor.UserID,
			BusinessName: vendor.BusinessName,
			Approved:     vendor.AdminApproved,
			ApprovedAt:   time.Now(),
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "burpp",
		}

		event := events.NewEvent(
			events.VendorApprovedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.VendorExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish vendor.approved event",
				zap.String("vendorId", vendor.ID),
				zap.Error(err),
			)
		}
	}
}
