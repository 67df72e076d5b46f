package model

// RSVP status values.
const (
	RSVPGoing    = "going"
	RSVPMaybe    = "maybe"
	RSVPNotGoing = "not-going"
	RSVPWaitlist = "waitlist"
)

// Attendee is a child item under the event partition, one per (event, user)
// pair. Re-RSVPing overwrites the item in place; there is no history.
type Attendee struct {
	PK     string `json:"-" dynamodbav:"PK"`
	SK     string `json:"-" dynamodbav:"SK"`
	GSI1PK string `json:"-" dynamodbav:"GSI1PK,omitempty"`
	GSI1SK string `json:"-" dynamodbav:"GSI1SK,omitempty"`

	ID          string `json:"id" dynamodbav:"id"`
	Name        string `json:"name" dynamodbav:"name"`
	Email       string `json:"email" dynamodbav:"email"`
	Avatar      string `json:"avatar,omitempty" dynamodbav:"avatar,omitempty"`
	Status      string `json:"status" dynamodbav:"status"`
	RespondedAt string `json:"respondedAt" dynamodbav:"respondedAt"`
}

// RSVPRequest records or changes a user's attendance.
type RSVPRequest struct {
	Status     string `json:"status" validate:"required,oneof=going maybe not-going waitlist"`
	UserID     string `json:"userId" validate:"required"`
	UserName   string `json:"userName" validate:"required"`
	UserEmail  string `json:"userEmail" validate:"required,email"`
	UserAvatar string `json:"userAvatar,omitempty"`
}
