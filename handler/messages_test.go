package handler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datavibes/eventapi/store/storetest"
)

func messageBody() map[string]any {
	return map[string]any{
		"type":          "reminder",
		"content":       "Doors open at 18:00",
		"channels":      []string{"slack", "email"},
		"recipientType": "going",
		"scheduledAt":   "2026-03-20T09:00:00.000Z",
	}
}

func TestCreateMessage(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)

	resp, err := hn.h.CreateMessage(context.Background(), request(messageBody(),
		map[string]string{"eventId": eventID}))
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode, resp.Body)

	body := decode(t, resp)
	messageID := body["id"].(string)
	assert.Equal(t, "PENDING", body["status"])
	assert.Equal(t, eventID, body["eventId"])
	assert.Equal(t, "2026-03-20T09:00:00.000Z", body["scheduledAt"])

	// The trigger is registered under the message id and its handle is
	// persisted but never exposed.
	require.Equal(t, []string{"msg-" + messageID}, hn.scheduler.created)
	item := hn.table.Item("EVENT#"+eventID, "MESSAGE#"+messageID)
	require.NotNil(t, item)
	assert.Contains(t, storetest.StringAttr(item, "schedulerScheduleArn"), "msg-"+messageID)
	_, onWire := body["schedulerScheduleArn"]
	assert.False(t, onWire)
}

func TestCreateMessageValidation(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)

	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   string
	}{
		{
			name:   "missing content",
			mutate: func(b map[string]any) { delete(b, "content") },
			want:   "content is required",
		},
		{
			name:   "bad channel",
			mutate: func(b map[string]any) { b["channels"] = []string{"sms"} },
			want:   "must be one of",
		},
		{
			name: "custom without recipients",
			mutate: func(b map[string]any) {
				b["recipientType"] = "custom"
				delete(b, "customRecipients")
			},
			want: "customRecipients is required",
		},
		{
			name: "bad custom recipient address",
			mutate: func(b map[string]any) {
				b["recipientType"] = "custom"
				b["customRecipients"] = []string{"not-an-email"}
			},
			want: "must be a valid email address",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := messageBody()
			tc.mutate(body)
			resp, err := hn.h.CreateMessage(context.Background(), request(body,
				map[string]string{"eventId": eventID}))
			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)
			assert.Contains(t, decode(t, resp)["error"], tc.want)
		})
	}
}

func TestCreateMessageScheduleFailure(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)

	hn.scheduler.createErr = errors.New("scheduler unavailable")
	resp, err := hn.h.CreateMessage(context.Background(), request(messageBody(),
		map[string]string{"eventId": eventID}))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	// Nothing was recorded: the trigger is created before the item.
	assert.Equal(t, 1, hn.table.Len())
}

func TestListMessages(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)
	ctx := context.Background()

	resp, err := hn.h.ListMessages(ctx, request(nil, map[string]string{"eventId": eventID}))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []any{}, decode(t, resp)["messages"])

	_, err = hn.h.CreateMessage(ctx, request(messageBody(), map[string]string{"eventId": eventID}))
	require.NoError(t, err)

	resp, err = hn.h.ListMessages(ctx, request(nil, map[string]string{"eventId": eventID}))
	require.NoError(t, err)
	assert.Len(t, decode(t, resp)["messages"], 1)
}

func TestDeleteMessage(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)
	ctx := context.Background()

	createResp, err := hn.h.CreateMessage(ctx, request(messageBody(), map[string]string{"eventId": eventID}))
	require.NoError(t, err)
	messageID := decode(t, createResp)["id"].(string)

	resp, err := hn.h.DeleteMessage(ctx, request(nil,
		map[string]string{"eventId": eventID, "messageId": messageID}))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	// The pending trigger was cancelled by name.
	assert.Equal(t, []string{"msg-" + messageID}, hn.scheduler.deleted)
	assert.Nil(t, hn.table.Item("EVENT#"+eventID, "MESSAGE#"+messageID))
}

func TestDeleteMessageScheduleFailureTolerated(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)
	ctx := context.Background()

	createResp, err := hn.h.CreateMessage(ctx, request(messageBody(), map[string]string{"eventId": eventID}))
	require.NoError(t, err)
	messageID := decode(t, createResp)["id"].(string)

	// The trigger may already have fired and deleted itself.
	hn.scheduler.deleteErr = errors.New("schedule not found")
	resp, err := hn.h.DeleteMessage(ctx, request(nil,
		map[string]string{"eventId": eventID, "messageId": messageID}))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Nil(t, hn.table.Item("EVENT#"+eventID, "MESSAGE#"+messageID))
}

func TestDeleteMessageNotFound(t *testing.T) {
	hn := newHarness(t)
	eventID := hn.createEvent(t, nil)

	resp, err := hn.h.DeleteMessage(context.Background(), request(nil,
		map[string]string{"eventId": eventID, "messageId": "missing"}))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Message not found", decode(t, resp)["error"])
}
