package email_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datavibes/eventapi/email"
)

type fakeSES struct {
	err    error
	inputs []*ses.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &ses.SendEmailOutput{}, nil
}

func TestSend(t *testing.T) {
	client := &fakeSES{}
	sender := email.New(client, "events@datavibes.example")

	err := sender.Send(context.Background(), "dana@example.com", "Reminder", "Doors open at 18:00\nSee you there")
	require.NoError(t, err)

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "events@datavibes.example", aws.ToString(in.Source))
	assert.Equal(t, []string{"dana@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Reminder", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "Doors open at 18:00\nSee you there", aws.ToString(in.Message.Body.Text.Data))
	// The HTML body swaps line breaks for <br>.
	assert.Equal(t, "Doors open at 18:00<br>See you there", aws.ToString(in.Message.Body.Html.Data))
}

func TestSendFailurePropagates(t *testing.T) {
	sender := email.New(&fakeSES{err: errors.New("throttled")}, "events@datavibes.example")

	err := sender.Send(context.Background(), "dana@example.com", "Reminder", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dana@example.com")
}
