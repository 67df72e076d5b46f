package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"

	"github.com/datavibes/eventapi/api"
	"github.com/datavibes/eventapi/model"
	"github.com/datavibes/eventapi/store"
)

// AddBudgetItem handles POST /events/{eventId}/budget. Budget items live
// embedded in the event root item.
func (h *Handler) AddBudgetItem(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	if eventID == "" {
		return api.BadRequest("Event ID is required"), nil
	}

	var body model.CreateBudgetItemRequest
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("budget item validation failed", "event_id", eventID, "error", err)
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

	item := model.BudgetItem{
		ID:          h.newID(),
		Category:    body.Category,
		Description: body.Description,
		Estimated:   body.Estimated,
		Actual:      body.Actual,
	}

	budget := event.Budget
	budget.Items = append(budget.Items, item)

	updates := map[string]any{
		"budget":    budget,
		"updatedAt": h.timestamp(),
	}
	if err := h.store.Update(ctx, pk, sk, updates); err != nil {
		log.Error("failed to add budget item", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("budget item added", "event_id", eventID, "item_id", item.ID)
	return api.Created(item), nil
}

// UpdateBudgetItem handles PUT /events/{eventId}/budget/{itemId}. Only the
// fields present in the request change; the item id is immutable.
func (h *Handler) UpdateBudgetItem(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	itemID := api.PathParam(req, "itemId")
	if eventID == "" || itemID == "" {
		return api.BadRequest("Event ID and item ID are required"), nil
	}

	var body model.BudgetItemPatch
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("budget item validation failed", "event_id", eventID, "item_id", itemID, "error", err)
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

	budget := event.Budget
	itemIndex := -1
	for i := range budget.Items {
		if budget.Items[i].ID == itemID {
			itemIndex = i
			break
		}
	}
	if itemIndex == -1 {
		return api.NotFound("Budget item not found"), nil
	}

	body.Apply(&budget.Items[itemIndex])

	updates := map[string]any{
		"budget":    budget,
		"updatedAt": h.timestamp(),
	}
	if err := h.store.Update(ctx, pk, sk, updates); err != nil {
		log.Error("failed to update budget item", "event_id", eventID, "item_id", itemID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("budget item updated", "event_id", eventID, "item_id", itemID)
	return api.Success(budget.Items[itemIndex]), nil
}
