package app

import (
	"burpp/domain"
	"burpp/pkg/events"
	"burpp/pkg/httperror"
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"
)

type AddFavoriteHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewAddFavoriteHandler(repository Repository, eventPublisher events.Publisher) *AddFavoriteHandler {
	return &AddFavoriteHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type AddFavoriteRequest struct {
	VendorID string `params:"id"`
}

type AddFavoriteResponse struct {
	Favorite domain.Favorite `json:"favorite"`
}

func (h AddFavoriteHandler) Handle(ctx context.Context, req *AddFavoriteRequest) (*AddFavoriteResponse, error) {
	vendor, err := h.repository.GetVendor(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"favorite.create.vendor_not_found",
				"Vendor not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"favorite.create.failed",
			"Failed to retrieve vendor",
			nil,
		)
	}

	userID := ctx.Value("UserID").(string)

	favorite, err := h.repository.CreateFavorite(ctx, userID, vendor.ID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"favorite.create.create_failed",
			"An error occurred while adding the favorite",
			nil,
		)
	}

	h.publishEvent(ctx, favorite)

	return &AddFavoriteResponse{
		Favorite: favorite,
	}, nil
}

func (h AddFavoriteHandler) publishEvent(ctx context.Context, favorite domain.Favorite) {
	if h.eventPublisher != nil {
		eventPayload := events.FavoriteAddedPayload{
			ID:        favorite.ID,
			UserID:    favorite.UserID,
			VendorID:  favorite.VendorID,
			CreatedAt: favorite.CreatedAt,
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "burpp",
		}

		event := events.NewEvent(
			events.FavoriteAddedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.VendorExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish vendor.favorite.added event",
				zap.String("favoriteId", favorite.ID),
				zap.Error(err),
			)
		}
	}
}
