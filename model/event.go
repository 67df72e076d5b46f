package model

// Event category values.
const (
	CategoryTeamBuilding = "team-building"
	CategoryWorkshop     = "workshop"
	CategorySocial       = "social"
	CategoryConference   = "conference"
	CategoryCelebration  = "celebration"
	CategoryOffsite      = "offsite"
	CategoryOther        = "other"
)

// Event status values.
const (
	StatusDraft     = "draft"
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	eventCategories = "team-building workshop social conference celebration offsite other"
	eventStatuses   = "draft upcoming ongoing completed cancelled"
)

// Event is the root item of an event aggregate. Budget, vendors and polls
// are embedded; attendees, media and scheduled messages live as separate
// child items under the event's partition key.
type Event struct {
	PK     string `json:"-" dynamodbav:"PK"`
	SK     string `json:"-" dynamodbav:"SK"`
	GSI1PK string `json:"-" dynamodbav:"GSI1PK,omitempty"`
	GSI1SK string `json:"-" dynamodbav:"GSI1SK,omitempty"`

	ID               string   `json:"id" dynamodbav:"id"`
	Title            string   `json:"title" dynamodbav:"title"`
	Description      string   `json:"description" dynamodbav:"description"`
	Category         string   `json:"category" dynamodbav:"category"`
	Status           string   `json:"status" dynamodbav:"status"`
	StartDate        string   `json:"startDate" dynamodbav:"startDate"`
	EndDate          string   `json:"endDate,omitempty" dynamodbav:"endDate,omitempty"`
	Location         string   `json:"location" dynamodbav:"location"`
	IsVirtual        bool     `json:"isVirtual" dynamodbav:"isVirtual"`
	VirtualLink      string   `json:"virtualLink,omitempty" dynamodbav:"virtualLink,omitempty"`
	Capacity         int      `json:"capacity" dynamodbav:"capacity"`
	WaitlistEnabled  bool     `json:"waitlistEnabled" dynamodbav:"waitlistEnabled"`
	HasVotingEnabled bool     `json:"hasVotingEnabled" dynamodbav:"hasVotingEnabled"`
	Budget           Budget   `json:"budget" dynamodbav:"budget"`
	Vendors          []Vendor `json:"vendors" dynamodbav:"vendors"`
	Polls            []Poll   `json:"polls" dynamodbav:"polls"`
	CoverImage       string   `json:"coverImage,omitempty" dynamodbav:"coverImage,omitempty"`
	SlackChannel     string   `json:"slackChannel,omitempty" dynamodbav:"slackChannel,omitempty"`
	CalendarEventID  string   `json:"calendarEventId,omitempty" dynamodbav:"calendarEventId,omitempty"`
	CreatedBy        string   `json:"createdBy" dynamodbav:"createdBy"`
	CreatedAt        string   `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt        string   `json:"updatedAt" dynamodbav:"updatedAt"`
}

// EventDetail is the full aggregate returned by the API: the root item plus
// the child collections fetched from the event's partition.
type EventDetail struct {
	Event
	Attendees         []Attendee         `json:"attendees"`
	Media             []MediaItem        `json:"media"`
	ScheduledMessages []ScheduledMessage `json:"scheduledMessages"`
}

// Detail wraps the event with the given child collections, normalising nil
// slices so the response always carries JSON arrays.
func (e Event) Detail(attendees []Attendee, media []MediaItem, messages []ScheduledMessage) EventDetail {
	if attendees == nil {
		attendees = []Attendee{}
	}
	if media == nil {
		media = []MediaItem{}
	}
	if messages == nil {
		messages = []ScheduledMessage{}
	}
	if e.Vendors == nil {
		e.Vendors = []Vendor{}
	}
	if e.Polls == nil {
		e.Polls = []Poll{}
	}
	if e.Budget.Items == nil {
		e.Budget.Items = []BudgetItem{}
	}
	return EventDetail{
		Event:             e,
		Attendees:         attendees,
		Media:             media,
		ScheduledMessages: messages,
	}
}

// CreateEventRequest is the creation variant of Event: server-assigned
// fields (id, timestamps) and the computed child collections are omitted.
type CreateEventRequest struct {
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description"`
	Category         string   `json:"category" validate:"required,oneof=team-building workshop social conference celebration offsite other"`
	Status           string   `json:"status" validate:"required,oneof=draft upcoming ongoing completed cancelled"`
	StartDate        string   `json:"startDate" validate:"required"`
	EndDate          string   `json:"endDate,omitempty"`
	Location         string   `json:"location"`
	IsVirtual        bool     `json:"isVirtual"`
	VirtualLink      string   `json:"virtualLink,omitempty"`
	Capacity         int      `json:"capacity" validate:"required,min=1"`
	WaitlistEnabled  bool     `json:"waitlistEnabled"`
	HasVotingEnabled bool     `json:"hasVotingEnabled"`
	Budget           Budget   `json:"budget"`
	Vendors          []Vendor `json:"vendors" validate:"dive"`
	Polls            []Poll   `json:"polls" validate:"dive"`
	CoverImage       string   `json:"coverImage,omitempty"`
	SlackChannel     string   `json:"slackChannel,omitempty"`
	CalendarEventID  string   `json:"calendarEventId,omitempty"`
	CreatedBy        string   `json:"createdBy" validate:"required"`
}

// UpdateEventRequest is the partial-update variant: every field optional,
// id/createdBy/createdAt immutable.
type UpdateEventRequest struct {
	Title            *string   `json:"title,omitempty"`
	Description      *string   `json:"description,omitempty"`
	Category         *string   `json:"category,omitempty" validate:"omitempty,oneof=team-building workshop social conference celebration offsite other"`
	Status           *string   `json:"status,omitempty" validate:"omitempty,oneof=draft upcoming ongoing completed cancelled"`
	StartDate        *string   `json:"startDate,omitempty"`
	EndDate          *string   `json:"endDate,omitempty"`
	Location         *string   `json:"location,omitempty"`
	IsVirtual        *bool     `json:"isVirtual,omitempty"`
	VirtualLink      *string   `json:"virtualLink,omitempty"`
	Capacity         *int      `json:"capacity,omitempty" validate:"omitempty,min=1"`
	WaitlistEnabled  *bool     `json:"waitlistEnabled,omitempty"`
	HasVotingEnabled *bool     `json:"hasVotingEnabled,omitempty"`
	Budget           *Budget   `json:"budget,omitempty"`
	Vendors          *[]Vendor `json:"vendors,omitempty" validate:"omitempty,dive"`
	Polls            *[]Poll   `json:"polls,omitempty" validate:"omitempty,dive"`
	CoverImage       *string   `json:"coverImage,omitempty"`
	SlackChannel     *string   `json:"slackChannel,omitempty"`
	CalendarEventID  *string   `json:"calendarEventId,omitempty"`
}
