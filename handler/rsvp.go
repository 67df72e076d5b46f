package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"

	"github.com/datavibes/eventapi/api"
	"github.com/datavibes/eventapi/model"
	"github.com/datavibes/eventapi/store"
)

// RSVP handles POST /events/{eventId}/rsvp. Re-RSVPing overwrites the user's
// attendee item. A "going" response lands on the waitlist instead when the
// event has waitlisting enabled and the going count has reached capacity.
// Reads and write are not atomic, so concurrent responses can briefly
// overshoot capacity.
func (h *Handler) RSVP(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	if eventID == "" {
		return api.BadRequest("Event ID is required"), nil
	}

	var body model.RSVPRequest
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("rsvp validation failed", "event_id", eventID, "error", err)
		return api.BadRequest(err.Error()), nil
	}

	pk := store.PartitionKey(store.TypeEvent, eventID)
	event, err := store.Get[model.Event](ctx, h.store, pk, store.SortKey(store.TypeMetadata, ""))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.NotFound("Event not found"), nil
		}
		log.Error("failed to get event", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}

	status := body.Status
	wasWaitlisted := false
	if status == model.RSVPGoing && event.WaitlistEnabled && event.Capacity > 0 {
		attendees, err := store.Query[model.Attendee](ctx, h.store, pk,
			store.QueryOptions{SortKeyPrefix: store.Prefix(store.TypeAttendee)})
		if err != nil {
			log.Error("failed to count attendees", "event_id", eventID, "error", err)
			return api.InternalError(), nil
		}

		going := 0
		for _, a := range attendees {
			// The responder's own previous RSVP does not hold a spot
			// against them.
			if a.Status == model.RSVPGoing && a.ID != body.UserID {
				going++
			}
		}
		if going >= event.Capacity {
			status = model.RSVPWaitlist
			wasWaitlisted = true
		}
	}

	now := h.timestamp()
	attendee := model.Attendee{
		PK:          pk,
		SK:          store.SortKey(store.TypeAttendee, body.UserID),
		GSI1PK:      store.PartitionKey(store.TypeUser, body.UserID),
		GSI1SK:      pk,
		ID:          body.UserID,
		Name:        body.UserName,
		Email:       body.UserEmail,
		Avatar:      body.UserAvatar,
		Status:      status,
		RespondedAt: now,
	}
	if err := store.Put(ctx, h.store, attendee); err != nil {
		log.Error("failed to record rsvp", "event_id", eventID, "user_id", body.UserID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("rsvp recorded", "event_id", eventID, "user_id", body.UserID, "status", status)
	return api.Success(map[string]any{
		"eventId":       eventID,
		"userId":        body.UserID,
		"status":        status,
		"respondedAt":   now,
		"wasWaitlisted": wasWaitlisted,
	}), nil
}
