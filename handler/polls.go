package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"

	"github.com/datavibes/eventapi/api"
	"github.com/datavibes/eventapi/model"
	"github.com/datavibes/eventapi/store"
)

// CreatePoll handles POST /events/{eventId}/polls. Polls live embedded in
// the event root item; creating one also flips hasVotingEnabled on.
func (h *Handler) CreatePoll(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	if eventID == "" {
		return api.BadRequest("Event ID is required"), nil
	}

	var body model.CreatePollRequest
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("poll validation failed", "event_id", eventID, "error", err)
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

	poll := model.Poll{
		ID:       h.newID(),
		Question: body.Question,
		Type:     body.Type,
		IsActive: true,
		ClosesAt: body.ClosesAt,
	}
	for _, opt := range body.Options {
		id := opt.ID
		if id == "" {
			id = h.newID()
		}
		votes := opt.Votes
		if votes == nil {
			votes = []string{}
		}
		poll.Options = append(poll.Options, model.PollOption{
			ID:    id,
			Label: opt.Label,
			Votes: votes,
		})
	}

	polls := append(event.Polls, poll)
	updates := map[string]any{
		"polls":            polls,
		"hasVotingEnabled": true,
		"updatedAt":        h.timestamp(),
	}
	if err := h.store.Update(ctx, pk, sk, updates); err != nil {
		log.Error("failed to create poll", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("poll created", "event_id", eventID, "poll_id", poll.ID)
	return api.Created(poll), nil
}

// Vote handles POST /events/{eventId}/polls/{pollId}/vote. A user holds at
// most one vote per poll: any prior vote is removed before the new one is
// recorded, so re-voting moves the vote.
func (h *Handler) Vote(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	pollID := api.PathParam(req, "pollId")
	if eventID == "" || pollID == "" {
		return api.BadRequest("Event ID and poll ID are required"), nil
	}

	var body model.VoteRequest
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("vote validation failed", "event_id", eventID, "poll_id", pollID, "error", err)
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

	polls := event.Polls
	pollIndex := -1
	for i := range polls {
		if polls[i].ID == pollID {
			pollIndex = i
			break
		}
	}
	if pollIndex == -1 {
		return api.NotFound("Poll not found"), nil
	}

	poll := &polls[pollIndex]
	if !poll.IsActive {
		return api.BadRequest("Poll is closed"), nil
	}

	optionIndex := -1
	for i := range poll.Options {
		if poll.Options[i].ID == body.OptionID {
			optionIndex = i
			break
		}
	}
	if optionIndex == -1 {
		return api.BadRequest("Option not found"), nil
	}

	for i := range poll.Options {
		poll.Options[i].Votes = removeVote(poll.Options[i].Votes, body.UserID)
	}
	poll.Options[optionIndex].Votes = append(poll.Options[optionIndex].Votes, body.UserID)

	updates := map[string]any{
		"polls":     polls,
		"updatedAt": h.timestamp(),
	}
	if err := h.store.Update(ctx, pk, sk, updates); err != nil {
		log.Error("failed to record vote", "event_id", eventID, "poll_id", pollID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("vote recorded", "event_id", eventID, "poll_id", pollID, "user_id", body.UserID)
	return api.Success(map[string]any{
		"pollId":   pollID,
		"optionId": body.OptionID,
		"userId":   body.UserID,
		"poll":     *poll,
	}), nil
}

// ClosePoll handles POST /events/{eventId}/polls/{pollId}/close. Closing is
// one-way; there is no reopen operation.
func (h *Handler) ClosePoll(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	pollID := api.PathParam(req, "pollId")
	if eventID == "" || pollID == "" {
		return api.BadRequest("Event ID and poll ID are required"), nil
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

	polls := event.Polls
	pollIndex := -1
	for i := range polls {
		if polls[i].ID == pollID {
			pollIndex = i
			break
		}
	}
	if pollIndex == -1 {
		return api.NotFound("Poll not found"), nil
	}

	poll := &polls[pollIndex]
	if !poll.IsActive {
		return api.BadRequest("Poll is already closed"), nil
	}
	poll.IsActive = false
	poll.ClosesAt = h.timestamp()

	updates := map[string]any{
		"polls":     polls,
		"updatedAt": h.timestamp(),
	}
	if err := h.store.Update(ctx, pk, sk, updates); err != nil {
		log.Error("failed to close poll", "event_id", eventID, "poll_id", pollID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("poll closed", "event_id", eventID, "poll_id", pollID)
	return api.Success(map[string]any{
		"pollId": pollID,
		"closed": true,
		"poll":   *poll,
	}), nil
}

func removeVote(votes []string, userID string) []string {
	out := votes[:0]
	for _, v := range votes {
		if v != userID {
			out = append(out, v)
		}
	}
	return out
}
