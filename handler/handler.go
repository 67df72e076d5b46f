// Package handler implements one method per REST operation of the
// event-planning API, plus the scheduled-message worker. Each method
// validates input, performs one or a few item-store operations and returns
// a JSON response envelope.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"github.com/datavibes/eventapi/store"
)

// isoFormat matches the millisecond UTC timestamps the API has always
// written.
const isoFormat = "2006-01-02T15:04:05.000Z"

// MediaStorage is the object-storage collaborator.
type MediaStorage interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	PublicURL(key string) string
	Delete(ctx context.Context, bucket, key string) error
	Bucket() string
	UploadExpiry() time.Duration
}

// MessageScheduler is the delayed-trigger collaborator.
type MessageScheduler interface {
	CreateOneShot(ctx context.Context, name, at string, payload any) (string, error)
	Delete(ctx context.Context, name string) error
}

// Notifier posts a text notification to a messaging channel. Failures are
// logged, never surfaced.
type Notifier interface {
	Post(ctx context.Context, channel, text string) error
}

// EmailSender delivers one message per recipient. Failures propagate.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Deps bundles the external collaborators.
type Deps struct {
	Media     MediaStorage
	Scheduler MessageScheduler
	Slack     Notifier
	Email     EmailSender
}

// Handler holds the store and collaborators shared by all operations. It is
// stateless between invocations.
type Handler struct {
	store     *store.Store
	registry  *store.Registry
	media     MediaStorage
	scheduler MessageScheduler
	slack     Notifier
	email     EmailSender
	log       *slog.Logger

	now   func() time.Time
	newID func() string
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithIDGenerator overrides entity id generation (used in tests).
func WithIDGenerator(newID func() string) Option {
	return func(h *Handler) { h.newID = newID }
}

// WithRegistry overrides the child-type registry used on event delete.
func WithRegistry(r *store.Registry) Option {
	return func(h *Handler) { h.registry = r }
}

// New creates a Handler.
func New(s *store.Store, deps Deps, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		store:     s,
		registry:  store.DefaultRegistry(),
		media:     deps.Media,
		scheduler: deps.Scheduler,
		slack:     deps.Slack,
		email:     deps.Email,
		log:       logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// requestLogger returns the handler logger scoped to the invocation's
// request id.
func (h *Handler) requestLogger(ctx context.Context) *slog.Logger {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return h.log.With("request_id", lc.AwsRequestID)
	}
	return h.log
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(isoFormat)
}
