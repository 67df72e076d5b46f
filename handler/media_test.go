package handler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datavibes/eventapi/store/storetest"
)

func mediaBody() map[string]any {
	return map[string]any{
		"type":        "image",
		"uploadedBy":  "user-1",
		"caption":     "Group photo",
		"fileName":    "team.jpg",
		"contentType": "image/jpeg",
	}
}

func TestCreateMedia(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)

	resp, err := hn.h.CreateMedia(context.Background(), request(mediaBody(),
		map[string]string{"eventId": eventID}))
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode, resp.Body)

	body := decode(t, resp)
	mediaID := body["id"].(string)
	wantKey := "events/" + eventID + "/media/" + mediaID + "/team.jpg"
	assert.Equal(t, "https://upload.example.com/"+wantKey, body["uploadUrl"])
	assert.Equal(t, "https://media.example.com/"+wantKey, body["url"])
	assert.Equal(t, float64(3600), body["expiresIn"])

	// The persisted item keeps the storage location and pending status;
	// neither appears on the wire.
	item := hn.table.Item("EVENT#"+eventID, "MEDIA#"+mediaID)
	require.NotNil(t, item)
	assert.Equal(t, wantKey, storetest.StringAttr(item, "s3Key"))
	assert.Equal(t, "media-bucket", storetest.StringAttr(item, "s3Bucket"))
	assert.Equal(t, "pending", storetest.StringAttr(item, "uploadStatus"))
	_, onWire := body["s3Key"]
	assert.False(t, onWire)
}

func TestCreateMediaEventNotFound(t *testing.T) {
	hn := newHarness(t)

	resp, err := hn.h.CreateMedia(context.Background(), request(mediaBody(),
		map[string]string{"eventId": "missing"}))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestCreateMediaValidation(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)

	body := mediaBody()
	body["type"] = "audio"
	resp, err := hn.h.CreateMedia(context.Background(), request(body,
		map[string]string{"eventId": eventID}))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Contains(t, decode(t, resp)["error"], "type must be one of")
}

func TestDeleteMedia(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)
	ctx := context.Background()

	createResp, err := hn.h.CreateMedia(ctx, request(mediaBody(), map[string]string{"eventId": eventID}))
	require.NoError(t, err)
	mediaID := decode(t, createResp)["id"].(string)

	resp, err := hn.h.DeleteMedia(ctx, request(nil,
		map[string]string{"eventId": eventID, "mediaId": mediaID}))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, decode(t, resp)["deleted"])

	assert.Nil(t, hn.table.Item("EVENT#"+eventID, "MEDIA#"+mediaID))
	require.Len(t, hn.media.deleted, 1)
	assert.Contains(t, hn.media.deleted[0], "media-bucket/events/"+eventID)
}

func TestDeleteMediaObjectFailureTolerated(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)
	ctx := context.Background()

	createResp, err := hn.h.CreateMedia(ctx, request(mediaBody(), map[string]string{"eventId": eventID}))
	require.NoError(t, err)
	mediaID := decode(t, createResp)["id"].(string)

	// A failed object delete must not block removing the record.
	hn.media.deleteErr = errors.New("bucket unavailable")
	resp, err := hn.h.DeleteMedia(ctx, request(nil,
		map[string]string{"eventId": eventID, "mediaId": mediaID}))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Nil(t, hn.table.Item("EVENT#"+eventID, "MEDIA#"+mediaID))
}

func TestDeleteMediaNotFound(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)

	resp, err := hn.h.DeleteMedia(context.Background(), request(nil,
		map[string]string{"eventId": eventID, "mediaId": "missing"}))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Media not found", decode(t, resp)["error"])
}
