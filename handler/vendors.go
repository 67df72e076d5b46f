package handler

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"

	"github.com/datavibes/eventapi/api"
	"github.com/datavibes/eventapi/model"
	"github.com/datavibes/eventapi/store"
)

// AddVendor handles POST /events/{eventId}/vendors. Vendors live embedded in
// the event root item.
func (h *Handler) AddVendor(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	if eventID == "" {
		return api.BadRequest("Event ID is required"), nil
	}

	var body model.CreateVendorRequest
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("vendor validation failed", "event_id", eventID, "error", err)
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

	vendor := model.Vendor{
		ID:       h.newID(),
		Name:     body.Name,
		Category: body.Category,
		Contact:  body.Contact,
		Cost:     body.Cost,
		Status:   body.Status,
		Notes:    body.Notes,
	}

	vendors := append(event.Vendors, vendor)
	updates := map[string]any{
		"vendors":   vendors,
		"updatedAt": h.timestamp(),
	}
	if err := h.store.Update(ctx, pk, sk, updates); err != nil {
		log.Error("failed to add vendor", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("vendor added", "event_id", eventID, "vendor_id", vendor.ID)
	return api.Created(vendor), nil
}

// UpdateVendor handles PUT /events/{eventId}/vendors/{vendorId}. Only the
// fields present in the request change; the vendor id is immutable.
func (h *Handler) UpdateVendor(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	vendorID := api.PathParam(req, "vendorId")
	if eventID == "" || vendorID == "" {
		return api.BadRequest("Event ID and vendor ID are required"), nil
	}

	var body model.VendorPatch
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("vendor validation failed", "event_id", eventID, "vendor_id", vendorID, "error", err)
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

	vendors := event.Vendors
	vendorIndex := -1
	for i := range vendors {
		if vendors[i].ID == vendorID {
			vendorIndex = i
			break
		}
	}
	if vendorIndex == -1 {
		return api.NotFound("Vendor not found"), nil
	}

	body.Apply(&vendors[vendorIndex])

	updates := map[string]any{
		"vendors":   vendors,
		"updatedAt": h.timestamp(),
	}
	if err := h.store.Update(ctx, pk, sk, updates); err != nil {
		log.Error("failed to update vendor", "event_id", eventID, "vendor_id", vendorID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("vendor updated", "event_id", eventID, "vendor_id", vendorID)
	return api.Success(vendors[vendorIndex]), nil
}
