package consumers

import (
	"burpp/app"
	"burpp/domain"
	"burpp/pkg/events"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// NotificationEventHandler turns consumed domain events into notification
// rows for the affected user.
type NotificationEventHandler struct {
	repository app.Repository
	logger     *zap.Logger
}

func NewNotificationEventHandler(repository app.Repository, logger *zap.Logger) *NotificationEventHandler {
	return &NotificationEventHandler{
		repository: repository,
		logger:     logger,
	}
}

func (h *NotificationEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	zap.L().Info("Event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.VendorApprovedEvent:
		return h.handleVendorApproved(ctx, event)
	case events.MessageCreatedEvent:
		return h.handleMessageCreated(ctx, event)
	case events.ReviewCreatedEvent:
		return h.handleReviewCreated(ctx, event)
	default:
		zap.L().Warn("Unknown event type, skipping", zap.String("event", event.Event))
		return nil
	}
}

func (h *NotificationEventHandler) handleVendorApproved(ctx context.Context, event *events.Event) error {
	payload, err := decodePayload(event)
	if err != nil {
		return err
	}

	userID, ok := payload["userId"].(string)
	if !ok || userID == "" {
		return fmt.Errorf("malformed payload - userId missing or invalid")
	}

	return h.notify(ctx, userID, domain.NotificationVendorApproved, event)
}

func (h *NotificationEventHandler) handleMessageCreated(ctx context.Context, event *events.Event) error {
	payload, err := decodePayload(event)
	if err != nil {
		return err
	}

	recipientID, ok := payload["recipientId"].(string)
	if !ok || recipientID == "" {
		return fmt.Errorf("malformed payload - recipientId missing or invalid")
	}

	return h.notify(ctx, recipientID, domain.NotificationMessageReceived, event)
}

func (h *NotificationEventHandler) handleReviewCreated(ctx context.Context, event *events.Event) error {
	payload, err := decodePayload(event)
	if err != nil {
		return err
	}

	vendorUserID, ok := payload["vendorUserId"].(string)
	if !ok || vendorUserID == "" {
		return fmt.Errorf("malformed payload - vendorUserId missing or invalid")
	}

	return h.notify(ctx, vendorUserID, domain.NotificationReviewReceived, event)
}

func (h *NotificationEventHandler) notify(ctx context.Context, userID, kind string, event *events.Event) error {
	body, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("malformed payload - marshal failed: %w", err)
	}

	notification, err := h.repository.CreateNotification(ctx, userID, kind, string(body))
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	zap.L().Info("Notification created",
		zap.String("notificationId", notification.ID),
		zap.String("userId", userID),
		zap.String("kind", kind),
		zap.String("traceId", event.TraceID),
	)
	return nil
}

func decodePayload(event *events.Event) (map[string]any, error) {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("malformed payload - marshal failed: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return nil, fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}
	return payload, nil
}
