package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datavibes/eventapi/model"
)

func validCreateEvent() model.CreateEventRequest {
	return model.CreateEventRequest{
		Title:     "Team Offsite",
		Category:  model.CategoryOffsite,
		Status:    model.StatusUpcoming,
		StartDate: "2026-04-01T09:00:00.000Z",
		Capacity:  50,
		CreatedBy: "user-1",
	}
}

func TestValidateCreateEvent(t *testing.T) {
	require.NoError(t, model.Validate(validCreateEvent()))

	tests := []struct {
		name   string
		mutate func(*model.CreateEventRequest)
		want   string
	}{
		{
			name:   "missing title",
			mutate: func(r *model.CreateEventRequest) { r.Title = "" },
			want:   "title is required",
		},
		{
			name:   "unknown category",
			mutate: func(r *model.CreateEventRequest) { r.Category = "festival" },
			want:   "category must be one of: team-building workshop social conference celebration offsite other",
		},
		{
			name:   "unknown status",
			mutate: func(r *model.CreateEventRequest) { r.Status = "tentative" },
			want:   "status must be one of: draft upcoming ongoing completed cancelled",
		},
		{
			name:   "zero capacity",
			mutate: func(r *model.CreateEventRequest) { r.Capacity = 0 },
			want:   "capacity is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateEvent()
			tc.mutate(&req)
			err := model.Validate(req)
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestValidateReportsFirstViolationOnly(t *testing.T) {
	err := model.Validate(model.CreateEventRequest{})
	require.Error(t, err)
	// Only the first violated field is surfaced.
	assert.Equal(t, "title is required", err.Error())
}

func TestValidateRSVP(t *testing.T) {
	req := model.RSVPRequest{
		Status:    model.RSVPGoing,
		UserID:    "u1",
		UserName:  "Dana",
		UserEmail: "dana@example.com",
	}
	require.NoError(t, model.Validate(req))

	req.UserEmail = "not-an-email"
	err := model.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "userEmail must be a valid email address", err.Error())

	req.UserEmail = "dana@example.com"
	req.Status = "attending"
	err = model.Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status must be one of")
}

func TestValidateScheduledMessage(t *testing.T) {
	req := model.CreateScheduledMessageRequest{
		Type:        "reminder",
		Content:     "See you there",
		ScheduledAt: "2026-03-20T09:00:00.000Z",
		Channels:    []string{model.ChannelSlack, model.ChannelEmail},
	}
	require.NoError(t, model.Validate(req))

	req.Channels = []string{"sms"}
	err := model.Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: slack email")

	req.Channels = nil
	req.CustomRecipients = []string{"valid@example.com", "nope"}
	err = model.Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a valid email address")
}

func TestValidateOptionalFieldsSkipped(t *testing.T) {
	// Patch types validate only the fields that are set.
	require.NoError(t, model.Validate(model.BudgetItemPatch{}))
	require.NoError(t, model.Validate(model.VendorPatch{}))
	require.NoError(t, model.Validate(model.UpdateEventRequest{}))

	bad := "festival"
	err := model.Validate(model.UpdateEventRequest{Category: &bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category must be one of")
}

func TestBudgetItemPatchApply(t *testing.T) {
	item := model.BudgetItem{ID: "b1", Category: "catering", Description: "Dinner", Estimated: 500}

	actual := 480.0
	model.BudgetItemPatch{Actual: &actual}.Apply(&item)

	assert.Equal(t, "b1", item.ID)
	assert.Equal(t, 500.0, item.Estimated)
	require.NotNil(t, item.Actual)
	assert.Equal(t, 480.0, *item.Actual)
}

func TestVendorPatchApply(t *testing.T) {
	vendor := model.Vendor{ID: "v1", Name: "Sound Co", Status: model.VendorPending, Cost: 1200}

	status := model.VendorConfirmed
	cost := 1100.0
	model.VendorPatch{Status: &status, Cost: &cost}.Apply(&vendor)

	assert.Equal(t, "v1", vendor.ID)
	assert.Equal(t, "Sound Co", vendor.Name)
	assert.Equal(t, model.VendorConfirmed, vendor.Status)
	assert.Equal(t, 1100.0, vendor.Cost)
}
