package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/datavibes/eventapi/api"
	"github.com/datavibes/eventapi/model"
	"github.com/datavibes/eventapi/store"
)

// CreateMedia handles POST /events/{eventId}/media: records the media item
// and returns a presigned URL the client PUTs the file to directly. The item
// stays pending until the client confirms the upload.
func (h *Handler) CreateMedia(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	if eventID == "" {
		return api.BadRequest("Event ID is required"), nil
	}

	var body model.CreateMediaRequest
	if err := api.ParseBody(req, &body); err != nil {
		return api.BadRequest("Request body is required"), nil
	}
	if err := model.Validate(&body); err != nil {
		log.Warn("media validation failed", "event_id", eventID, "error", err)
		return api.BadRequest(err.Error()), nil
	}

	pk := store.PartitionKey(store.TypeEvent, eventID)
	if _, err := store.Get[model.Event](ctx, h.store, pk, store.SortKey(store.TypeMetadata, "")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.NotFound("Event not found"), nil
		}
		log.Error("failed to get event", "event_id", eventID, "error", err)
		return api.InternalError(), nil
	}

	mediaID := h.newID()
	key := fmt.Sprintf("events/%s/media/%s/%s", eventID, mediaID, body.FileName)

	uploadURL, err := h.media.PresignUpload(ctx, key, body.ContentType)
	if err != nil {
		log.Error("failed to presign upload", "event_id", eventID, "media_id", mediaID, "error", err)
		return api.InternalError(), nil
	}

	now := h.timestamp()
	item := model.MediaItem{
		PK:           pk,
		SK:           store.SortKey(store.TypeMedia, mediaID),
		ID:           mediaID,
		URL:          h.media.PublicURL(key),
		Type:         body.Type,
		UploadedBy:   body.UploadedBy,
		UploadedAt:   now,
		Caption:      body.Caption,
		S3Key:        key,
		S3Bucket:     h.media.Bucket(),
		ContentType:  body.ContentType,
		FileName:     body.FileName,
		UploadStatus: model.UploadPending,
	}
	if err := store.Put(ctx, h.store, item); err != nil {
		log.Error("failed to record media item", "event_id", eventID, "media_id", mediaID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("media upload created", "event_id", eventID, "media_id", mediaID)
	return api.Created(map[string]any{
		"id":         mediaID,
		"uploadUrl":  uploadURL,
		"url":        item.URL,
		"type":       item.Type,
		"uploadedBy": item.UploadedBy,
		"uploadedAt": item.UploadedAt,
		"caption":    item.Caption,
		"expiresIn":  int(h.media.UploadExpiry().Seconds()),
	}), nil
}

// DeleteMedia handles DELETE /events/{eventId}/media/{mediaId}. The stored
// object is removed best-effort; a failed object delete is logged and the
// item record is removed anyway.
func (h *Handler) DeleteMedia(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.requestLogger(ctx)
	eventID := api.PathParam(req, "eventId")
	mediaID := api.PathParam(req, "mediaId")
	if eventID == "" || mediaID == "" {
		return api.BadRequest("Event ID and media ID are required"), nil
	}

	pk := store.PartitionKey(store.TypeEvent, eventID)
	sk := store.SortKey(store.TypeMedia, mediaID)
	item, err := store.Get[model.MediaItem](ctx, h.store, pk, sk)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.NotFound("Media not found"), nil
		}
		log.Error("failed to get media item", "event_id", eventID, "media_id", mediaID, "error", err)
		return api.InternalError(), nil
	}

	if item.S3Bucket != "" && item.S3Key != "" {
		if err := h.media.Delete(ctx, item.S3Bucket, item.S3Key); err != nil {
			log.Warn("failed to delete media object", "event_id", eventID, "media_id", mediaID, "error", err)
		}
	}

	if err := h.store.Delete(ctx, pk, sk); err != nil {
		log.Error("failed to delete media item", "event_id", eventID, "media_id", mediaID, "error", err)
		return api.InternalError(), nil
	}

	log.Info("media deleted", "event_id", eventID, "media_id", mediaID)
	return api.Success(map[string]any{"deleted": true, "mediaId": mediaID}), nil
}
