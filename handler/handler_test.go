package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"github.com/datavibes/eventapi/handler"
	"github.com/datavibes/eventapi/store"
	"github.com/datavibes/eventapi/store/storetest"
)

// frozen is the fixed test clock: 2026-03-14T10:00:00.000Z.
var frozen = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

const frozenISO = "2026-03-14T10:00:00.000Z"

type fakeMedia struct {
	presignErr error
	deleteErr  error
	deleted    []string
}

func (f *fakeMedia) PresignUpload(_ context.Context, key, _ string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://upload.example.com/" + key, nil
}

func (f *fakeMedia) PublicURL(key string) string {
	return "https://media.example.com/" + key
}

func (f *fakeMedia) Delete(_ context.Context, bucket, key string) error {
	f.deleted = append(f.deleted, bucket+"/"+key)
	return f.deleteErr
}

func (f *fakeMedia) Bucket() string              { return "media-bucket" }
func (f *fakeMedia) UploadExpiry() time.Duration { return time.Hour }

type fakeScheduler struct {
	createErr error
	deleteErr error
	created   []string
	deleted   []string
}

func (f *fakeScheduler) CreateOneShot(_ context.Context, name, _ string, _ any) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, name)
	return "arn:aws:scheduler:us-east-1:123456789012:schedule/default/" + name, nil
}

func (f *fakeScheduler) Delete(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return f.deleteErr
}

type fakeNotifier struct {
	err   error
	posts []string
}

func (f *fakeNotifier) Post(_ context.Context, channel, text string) error {
	f.posts = append(f.posts, channel+": "+text)
	return f.err
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeEmail struct {
	err  error
	sent []sentMail
}

func (f *fakeEmail) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// harness bundles a handler wired to the in-memory table and fake
// collaborators, with a frozen clock and sequential ids.
type harness struct {
	h         *handler.Handler
	table     *storetest.Table
	media     *fakeMedia
	scheduler *fakeScheduler
	slack     *fakeNotifier
	email     *fakeEmail
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	table := storetest.New()
	media := &fakeMedia{}
	sched := &fakeScheduler{}
	notifier := &fakeNotifier{}
	mail := &fakeEmail{}

	seq := 0
	h := handler.New(
		store.New(table, store.Config{Table: "test-table"}),
		handler.Deps{Media: media, Scheduler: sched, Slack: notifier, Email: mail},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		handler.WithClock(func() time.Time { return frozen }),
		handler.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)

	return &harness{h: h, table: table, media: media, scheduler: sched, slack: notifier, email: mail}
}

func request(body any, pathParams map[string]string) events.APIGatewayProxyRequest {
	req := events.APIGatewayProxyRequest{PathParameters: pathParams}
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req.Body = string(encoded)
	}
	return req
}

func decode(t *testing.T, resp events.APIGatewayProxyResponse) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	return out
}

// createEvent creates an event through the API and returns its id.
func (hn *harness) createEvent(t *testing.T, overrides map[string]any) string {
	t.Helper()

	body := map[string]any{
		"title":     "Team Offsite",
		"category":  "offsite",
		"status":    "upcoming",
		"startDate": "2026-04-01T09:00:00.000Z",
		"location":  "Lisbon",
		"capacity":  50,
		"createdBy": "user-admin",
	}
	for k, v := range overrides {
		body[k] = v
	}

	resp, err := hn.h.CreateEvent(context.Background(), request(body, nil))
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode, resp.Body)

	return decode(t, resp)["id"].(string)
}
