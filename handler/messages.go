package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/datavibes/eventapi/api"
	"github.com/datavibes/eventapi/model"
	"github.com/datavibes/eventapi/store"
)

// CreateMessage handles POST /events/{eventId}/messages: registers the
// one-shot trigger first, then records the pending message with the schedule
// handle so it can be cancelled later.
func (h *Handler) CreateMessage(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	if eventID == "" {
		return api.BadRequest("Event ID is required"), nil
	}

	var body model.CreateScheduledMessageRequest
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("message validation failed", "event_id", eventID, "error", err)
		return api.BadRequest(err.Error()), nil
	}
	if body.RecipientType == model.RecipientsCustom && len(body.CustomRecipients) == 0 {
		return api.BadRequest("customRecipients is required for custom recipient type"), nil
	}

	messageID := h.newID()
	scheduleName := "msg-" + messageID
	scheduleARN, err := h.scheduler.CreateOneShot(ctx, scheduleName, body.ScheduledAt, map[string]string{
		"eventId":   eventID,
		"messageId": messageID,
	})
	if err != nil {
		log.Error("failed to create schedule", "event_id", eventID, "message_id", messageID, "error", err)
		return api.InternalError(), nil
	}

	now := h.timestamp()
	message := model.ScheduledMessage{
		PK:               store.PartitionKey(store.TypeEvent, eventID),
		SK:               store.SortKey(store.TypeMessage, messageID),
		ID:               messageID,
		EventID:          eventID,
		Type:             body.Type,
		Subject:          body.Subject,
		Content:          body.Content,
		Channels:         body.Channels,
		RecipientType:    body.RecipientType,
		CustomRecipients: body.CustomRecipients,
		ScheduledAt:      body.ScheduledAt,
		Timezone:         body.Timezone,
		SlackChannel:     body.SlackChannel,
		FormFields:       body.FormFields,
		Status:           model.MessagePending,
		ScheduleARN:      scheduleARN,
		CreatedBy:        body.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := store.Put(ctx, h.store, message); err != nil {
		log.Error("failed to record message", "event_id", eventID, "message_id", messageID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("message scheduled", "event_id", eventID, "message_id", messageID, "scheduled_at", body.ScheduledAt)
	return api.Created(message), nil
}

// ListMessages handles GET /events/{eventId}/messages.
func (h *Handler) ListMessages(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	if eventID == "" {
		return api.BadRequest("Event ID is required"), nil
	}

	messages, err := store.Query[model.ScheduledMessage](ctx, h.store,
		store.PartitionKey(store.TypeEvent, eventID),
		store.QueryOptions{SortKeyPrefix: store.Prefix(store.TypeMessage)})
	if err != nil {
		log.Error("failed to list messages", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}
	if messages == nil {
		messages = []model.ScheduledMessage{}
	}

	return api.Success(map[string]any{"messages": messages}), nil
}

// DeleteMessage handles DELETE /events/{eventId}/messages/{messageId}. The
// pending trigger is cancelled best-effort; it may already have fired and
// deleted itself.
func (h *Handler) DeleteMessage(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	messageID := api.PathParam(req, "messageId")
	if eventID == "" || messageID == "" {
		return api.BadRequest("Event ID and message ID are required"), nil
	}

	pk := store.PartitionKey(store.TypeEvent, eventID)
	sk := store.SortKey(store.TypeMessage, messageID)
	message, err := store.Get[model.ScheduledMessage](ctx, h.store, pk, sk)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.NotFound("Message not found"), nil
		}
		log.Error("failed to get message", "event_id", eventID, "message_id", messageID, "error", err)
		return api.InternalError(), nil
	}

	if message.Status == model.MessagePending && message.ScheduleARN != "" {
		if err := h.scheduler.Delete(ctx, scheduleNameFromARN(message.ScheduleARN)); err != nil {
			log.Warn("failed to delete schedule", "event_id", eventID, "message_id", messageID, "error", err)
		}
	}

	if err := h.store.Delete(ctx, pk, sk); err != nil {
		log.Error("failed to delete message", "event_id", eventID, "message_id", messageID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("message deleted", "event_id", eventID, "message_id", messageID)
	return api.Success(map[string]any{"deleted": true, "messageId": messageID}), nil
}

// scheduleNameFromARN extracts the schedule name from an ARN of the form
// arn:aws:scheduler:...:schedule/<group>/<name>.
func scheduleNameFromARN(arn string) string {
	parts := strings.Split(arn, "/")
	return parts[len(parts)-1]
}
