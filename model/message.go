package model

// Message delivery channels.
const (
	ChannelSlack = "slack"
	ChannelEmail = "email"
)

// Recipient selection modes.
const (
	RecipientsAll    = "all"
	RecipientsGoing  = "going"
	RecipientsMaybe  = "maybe"
	RecipientsCustom = "custom"
)

// Scheduled message lifecycle. A message stays PENDING until the worker
// delivers it; delivery failures leave it PENDING for the invoker to retry.
const (
	MessagePending = "PENDING"
	MessageSent    = "SENT"
)

// FormField describes one input of a form-type message.
type FormField struct {
	ID       string   `json:"id" dynamodbav:"id"`
	Type     string   `json:"type" dynamodbav:"type" validate:"omitempty,oneof=text textarea select checkbox rating"`
	Label    string   `json:"label" dynamodbav:"label"`
	Required bool     `json:"required" dynamodbav:"required"`
	Options  []string `json:"options,omitempty" dynamodbav:"options,omitempty"`
}

// ScheduledMessage is a child item under the event partition. The schedule
// ARN is the opaque handle of the external one-shot trigger, kept so the
// trigger can be cancelled while the message is still pending.
type ScheduledMessage struct {
	PK string `json:"-" dynamodbav:"PK"`
	SK string `json:"-" dynamodbav:"SK"`

	ID               string      `json:"id" dynamodbav:"id"`
	EventID          string      `json:"eventId" dynamodbav:"eventId"`
	Type             string      `json:"type" dynamodbav:"type"`
	Subject          string      `json:"subject,omitempty" dynamodbav:"subject,omitempty"`
	Content          string      `json:"content" dynamodbav:"content"`
	Channels         []string    `json:"channels,omitempty" dynamodbav:"channels,omitempty"`
	RecipientType    string      `json:"recipientType,omitempty" dynamodbav:"recipientType,omitempty"`
	CustomRecipients []string    `json:"customRecipients,omitempty" dynamodbav:"customRecipients,omitempty"`
	ScheduledAt      string      `json:"scheduledAt" dynamodbav:"scheduledAt"`
	Timezone         string      `json:"timezone,omitempty" dynamodbav:"timezone,omitempty"`
	SlackChannel     string      `json:"slackChannel,omitempty" dynamodbav:"slackChannel,omitempty"`
	FormFields       []FormField `json:"formFields,omitempty" dynamodbav:"formFields,omitempty"`
	Status           string      `json:"status" dynamodbav:"status"`
	SentAt           string      `json:"sentAt,omitempty" dynamodbav:"sentAt,omitempty"`
	ErrorMessage     string      `json:"errorMessage,omitempty" dynamodbav:"errorMessage,omitempty"`
	ScheduleARN      string      `json:"-" dynamodbav:"schedulerScheduleArn,omitempty"`
	CreatedBy        string      `json:"createdBy,omitempty" dynamodbav:"createdBy,omitempty"`
	CreatedAt        string      `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt        string      `json:"updatedAt" dynamodbav:"updatedAt"`
}

// CreateScheduledMessageRequest is the creation variant of ScheduledMessage.
type CreateScheduledMessageRequest struct {
	Type             string      `json:"type" validate:"required"`
	Subject          string      `json:"subject,omitempty"`
	Content          string      `json:"content" validate:"required"`
	Channels         []string    `json:"channels,omitempty" validate:"omitempty,dive,oneof=slack email"`
	RecipientType    string      `json:"recipientType,omitempty" validate:"omitempty,oneof=all going maybe custom"`
	CustomRecipients []string    `json:"customRecipients,omitempty" validate:"omitempty,dive,email"`
	ScheduledAt      string      `json:"scheduledAt" validate:"required"`
	Timezone         string      `json:"timezone,omitempty"`
	SlackChannel     string      `json:"slackChannel,omitempty"`
	FormFields       []FormField `json:"formFields,omitempty" validate:"omitempty,dive"`
	CreatedBy        string      `json:"createdBy,omitempty"`
}

// HasChannel reports whether the message targets the given channel.
func (m *ScheduledMessage) HasChannel(channel string) bool {
	for _, c := range m.Channels {
		if c == channel {
			return true
		}
	}
	return false
}
