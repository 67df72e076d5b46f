// Package email sends transactional mail through SES.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

// API is the subset of the SES client used by the Sender.
type API interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Sender sends one plain-text message per recipient, with a line-break HTML
// equivalent. Unlike the other collaborators, send failures propagate to
// the caller.
type Sender struct {
	client API
	from   string
}

// New creates a Sender using the given verified source address.
func New(client API, from string) *Sender {
	return &Sender{client: client, from: from}
}

// Send delivers a single message to one recipient.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String(charset),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String(charset),
				},
				Html: &types.Content{
					Data:    aws.String(strings.ReplaceAll(body, "\n", "<br>")),
					Charset: aws.String(charset),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
