package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"golang.org/x/sync/errgroup"

	"github.com/datavibes/eventapi/api"
	"github.com/datavibes/eventapi/model"
	"github.com/datavibes/eventapi/store"
)

// CreateEvent handles POST /events.
func (h *Handler) CreateEvent(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)

	var body model.CreateEventRequest
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("event validation failed", "error", err)
		return api.BadRequest(err.Error()), nil
	}

	id := h.newID()
	now := h.timestamp()
	event := model.Event{
		PK:     store.PartitionKey(store.TypeEvent, id),
		SK:     store.SortKey(store.TypeMetadata, ""),
		GSI1PK: store.PartitionKey(store.TypeStatus, body.Status),
		GSI1SK: store.PartitionKey(store.TypeDate, body.StartDate),

		ID:               id,
		Title:            body.Title,
		Description:      body.Description,
		Category:         body.Category,
		Status:           body.Status,
		StartDate:        body.StartDate,
		EndDate:          body.EndDate,
		Location:         body.Location,
		IsVirtual:        body.IsVirtual,
		VirtualLink:      body.VirtualLink,
		Capacity:         body.Capacity,
		WaitlistEnabled:  body.WaitlistEnabled,
		HasVotingEnabled: body.HasVotingEnabled,
		Budget:           body.Budget,
		Vendors:          body.Vendors,
		Polls:            body.Polls,
		CoverImage:       body.CoverImage,
		SlackChannel:     body.SlackChannel,
		CalendarEventID:  body.CalendarEventID,
		CreatedBy:        body.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := store.Put(ctx, h.store, event); err != nil {
		log.Error("failed to create event", "error", err)
		return api.InternalError(), nil
	}

	log.Info("event created", "event_id", id)
	return api.Created(event.Detail(nil, nil, nil)), nil
}

// ListEvents handles GET /events, with optional status and category filters.
// Status filtering uses the secondary index; the unfiltered listing scans
// root items.
func (h *Handler) ListEvents(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	status := api.QueryParam(req, "status")
	category := api.QueryParam(req, "category")

	var (
		items []model.Event
		err   error
	)
	if status != "" {
		items, err = store.Query[model.Event](ctx, h.store,
			store.PartitionKey(store.TypeStatus, status),
			store.QueryOptions{IndexName: store.IndexGSI1})
	} else {
		items, err = store.ScanRoots[model.Event](ctx, h.store, store.TypeEvent)
	}
	if err != nil {
		log.Error("failed to list events", "error", err)
		return api.InternalError(), nil
	}

	details := make([]model.EventDetail, 0, len(items))
	for _, event := range items {
		if category != "" && event.Category != category {
			continue
		}
		details = append(details, event.Detail(nil, nil, nil))
	}

	return api.Success(map[string]any{"events": details}), nil
}

// GetEvent handles GET /events/{eventId}, assembling the full aggregate from
// the root item and three concurrent child-prefix queries.
func (h *Handler) GetEvent(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	if eventID == "" {
		return api.BadRequest("Event ID is required"), nil
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

	var (
		attendees []model.Attendee
		media     []model.MediaItem
		messages  []model.ScheduledMessage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		attendees, err = store.Query[model.Attendee](gctx, h.store, pk,
			store.QueryOptions{SortKeyPrefix: store.Prefix(store.TypeAttendee)})
		return err
	})
	g.Go(func() error {
		var err error
		media, err = store.Query[model.MediaItem](gctx, h.store, pk,
			store.QueryOptions{SortKeyPrefix: store.Prefix(store.TypeMedia)})
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = store.Query[model.ScheduledMessage](gctx, h.store, pk,
			store.QueryOptions{SortKeyPrefix: store.Prefix(store.TypeMessage)})
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load event children", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}

	return api.Success(event.Detail(attendees, media, messages)), nil
}

// UpdateEvent handles PUT /events/{eventId}. Only the fields present in the
// request are written; id, createdBy and createdAt never change. Status and
// start date updates also rewrite the index keys so filtered listings stay
// consistent.
func (h *Handler) UpdateEvent(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	if eventID == "" {
		return api.BadRequest("Event ID is required"), nil
	}

	var body model.UpdateEventRequest
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("event validation failed", "event_id", eventID, "error", err)
		return api.BadRequest(err.Error()), nil
	}

	pk := store.PartitionKey(store.TypeEvent, eventID)
	sk := store.SortKey(store.TypeMetadata, "")
	event, err := store.Get[model.Event](ctx, h.store, pk, sk)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.NotFound("Event not found"), nil
		}
		log.Error("failed to get event", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}

	now := h.timestamp()
	updates := map[string]any{"updatedAt": now}
	event.UpdatedAt = now

	if body.Title != nil {
		updates["title"] = *body.Title
		event.Title = *body.Title
	}
	if body.Description != nil {
		updates["description"] = *body.Description
		event.Description = *body.Description
	}
	if body.Category != nil {
		updates["category"] = *body.Category
		event.Category = *body.Category
	}
	if body.Status != nil {
		updates["status"] = *body.Status
		updates[store.AttrGSI1PK] = store.PartitionKey(store.TypeStatus, *body.Status)
		event.Status = *body.Status
		event.GSI1PK = store.PartitionKey(store.TypeStatus, *body.Status)
	}
	if body.StartDate != nil {
		updates["startDate"] = *body.StartDate
		updates[store.AttrGSI1SK] = store.PartitionKey(store.TypeDate, *body.StartDate)
		event.StartDate = *body.StartDate
		event.GSI1SK = store.PartitionKey(store.TypeDate, *body.StartDate)
	}
	if body.EndDate != nil {
		updates["endDate"] = *body.EndDate
		event.EndDate = *body.EndDate
	}
	if body.Location != nil {
		updates["location"] = *body.Location
		event.Location = *body.Location
	}
	if body.IsVirtual != nil {
		updates["isVirtual"] = *body.IsVirtual
		event.IsVirtual = *body.IsVirtual
	}
	if body.VirtualLink != nil {
		updates["virtualLink"] = *body.VirtualLink
		event.VirtualLink = *body.VirtualLink
	}
	if body.Capacity != nil {
		updates["capacity"] = *body.Capacity
		event.Capacity = *body.Capacity
	}
	if body.WaitlistEnabled != nil {
		updates["waitlistEnabled"] = *body.WaitlistEnabled
		event.WaitlistEnabled = *body.WaitlistEnabled
	}
	if body.HasVotingEnabled != nil {
		updates["hasVotingEnabled"] = *body.HasVotingEnabled
		event.HasVotingEnabled = *body.HasVotingEnabled
	}
	if body.Budget != nil {
		updates["budget"] = *body.Budget
		event.Budget = *body.Budget
	}
	if body.Vendors != nil {
		updates["vendors"] = *body.Vendors
		event.Vendors = *body.Vendors
	}
	if body.Polls != nil {
		updates["polls"] = *body.Polls
		event.Polls = *body.Polls
	}
	if body.CoverImage != nil {
		updates["coverImage"] = *body.CoverImage
		event.CoverImage = *body.CoverImage
	}
	if body.SlackChannel != nil {
		updates["slackChannel"] = *body.SlackChannel
		event.SlackChannel = *body.SlackChannel
	}
	if body.CalendarEventID != nil {
		updates["calendarEventId"] = *body.CalendarEventID
		event.CalendarEventID = *body.CalendarEventID
	}

	if err := h.store.Update(ctx, pk, sk, updates); err != nil {
		log.Error("failed to update event", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("event updated", "event_id", eventID)
	return api.Success(event), nil
}

// DeleteEvent handles DELETE /events/{eventId}: the root item plus every
// child item under each registered prefix, removed in batches.
func (h *Handler) DeleteEvent(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	if eventID == "" {
		return api.BadRequest("Event ID is required"), nil
	}

	pk := store.PartitionKey(store.TypeEvent, eventID)
	sk := store.SortKey(store.TypeMetadata, "")
	if _, err := store.Get[model.Event](ctx, h.store, pk, sk); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.NotFound("Event not found"), nil
		}
		log.Error("failed to get event", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}

	keys := []store.Key{{PK: pk, SK: sk}}
	for _, childType := range h.registry.ChildrenOf(store.TypeEvent) {
		children, err := store.Query[store.Key](ctx, h.store, pk,
			store.QueryOptions{SortKeyPrefix: store.Prefix(childType)})
		if err != nil {
			log.Error("failed to enumerate children", "event_id", eventID, "child_type", childType, "error", err)
			return api.InternalError(), nil
		}
		keys = append(keys, children...)
	}

	if err := h.store.BatchDelete(ctx, keys); err != nil {
		log.Error("failed to delete event", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("event deleted", "event_id", eventID, "items", len(keys))
	return api.Success(map[string]any{"deleted": true, "eventId": eventID}), nil
}
