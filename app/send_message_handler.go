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

type SendMessageHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewSendMessageHandler(repository Repository, eventPublisher events.Publisher) *SendMessageHandler {
	return &SendMessageHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type SendMessageRequest struct {
	ConversationID string `params:"id" validate:"required"`
	Content        string `json:"content" validate:"required,max=4000"`
}

type SendMessageResponse struct {
	Message domain.Message `json:"message"`
}

func (h SendMessageHandler) Handle(ctx context.Context, req *SendMessageRequest) (*SendMessageResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"message.create.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"message.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	conversation, err := h.repository.GetConversation(ctx, req.ConversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"message.create.conversation_not_found",
				"Conversation not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"message.create.failed",
			"Failed to retrieve conversation",
			nil,
		)
	}

	userID := ctx.Value("UserID").(string)
	recipientID, err := h.recipientFor(ctx, conversation, userID)
	if err != nil {
		return nil, err
	}

	message, err := h.repository.CreateMessage(ctx, conversation.ID, userID, req.Content)
	if err != nil {
		return nil, httperror.InternalServerError(
			"message.create.create_failed",
			"An error occurred while sending the message",
			nil,
		)
	}

	h.publishEvent(ctx, message, recipientID)

	return &SendMessageResponse{
		Message: message,
	}, nil
}

// recipientFor resolves the other party's user id. Conversations store the
// vendor profile id, so the vendor side needs a profile lookup.
func (h SendMessageHandler) recipientFor(ctx context.Context, conversation domain.Conversation, senderID string) (string, error) {
	vendor, err := h.repository.GetVendor(ctx, conversation.VendorID)
	if err != nil {
		return "", httperror.InternalServerError(
			"message.create.vendor_lookup_failed",
			"Failed to resolve conversation participants",
			nil,
		)
	}

	switch senderID {
	case conversation.CustomerID:
		return vendor.UserID, nil
	case vendor.UserID:
		return conversation.CustomerID, nil
	default:
		return "", httperror.Forbidden(
			"message.create.forbidden",
			"You are not a participant in this conversation",
			nil,
		)
	}
}

func (h SendMessageHandler) publishEvent(ctx context.Context, message domain.Message, recipientID string) {
	if h.eventPublisher != nil {
		eventPayload := events.MessageCreatedPayload{
			ID:             message.ID,
			ConversationID: message.ConversationID,
			SenderID:       message.SenderID,
			RecipientID:    recipientID,
			Content:        message.Content,
			CreatedAt:      message.CreatedAt,
		}

		headers := events.Headers{
			TraceID:       events.GenerateTraceID(),
			CorrelationID: events.GenerateCorrelationID(),
			Service:       "burpp",
		}

		event := events.NewEvent(
			events.MessageCreatedEvent,
			events.EventVersionV1,
			eventPayload,
			headers,
		)

		if err := h.eventPublisher.Publish(ctx, events.MessagingExchange, event, headers); err != nil {
			zap.L().Error("Failed to publish message.created event",
				zap.String("messageId", message.ID),
				zap.Error(err),
			)
		}
	}
}
