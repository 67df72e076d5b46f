package model

// PollOption is one choice in a poll. Votes is the set of user ids holding
// a vote on this option; a user appears in at most one option per poll.
type PollOption struct {
	ID    string   `json:"id" dynamodbav:"id"`
	Label string   `json:"label" dynamodbav:"label"`
	Votes []string `json:"votes" dynamodbav:"votes"`
}

// Poll lives embedded in the event root item's polls array.
type Poll struct {
	ID       string       `json:"id" dynamodbav:"id"`
	Question string       `json:"question" dynamodbav:"question"`
	Type     string       `json:"type" dynamodbav:"type" validate:"omitempty,oneof=date location custom"`
	Options  []PollOption `json:"options" dynamodbav:"options"`
	IsActive bool         `json:"isActive" dynamodbav:"isActive"`
	ClosesAt string       `json:"closesAt,omitempty" dynamodbav:"closesAt,omitempty"`
}

// CreatePollRequest is the creation variant of Poll (id server-assigned).
type CreatePollRequest struct {
	Question string       `json:"question" validate:"required"`
	Type     string       `json:"type" validate:"required,oneof=date location custom"`
	Options  []PollOption `json:"options" validate:"required,dive"`
	IsActive bool         `json:"isActive"`
	ClosesAt string       `json:"closesAt,omitempty"`
}

// VoteRequest casts or moves a user's single vote within a poll.
type VoteRequest struct {
	OptionID string `json:"optionId" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
}
