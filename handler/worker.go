package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/datavibes/eventapi/model"
	"github.com/datavibes/eventapi/store"
)

// WorkerEvent is the payload a fired schedule delivers to the worker.
type WorkerEvent struct {
	EventID   string `json:"eventId"`
	MessageID string `json:"messageId"`
}

// ProcessMessage delivers one scheduled message. A missing message is
// skipped (it was deleted after the trigger fired); an already-sent message
// is skipped (duplicate trigger). Slack delivery is best-effort; email
// delivery failures propagate so the invoker retries the whole invocation.
func (h *Handler) ProcessMessage(ctx context.Context, event WorkerEvent) error {
	log := h.requestLogger(ctx).With("event_id", event.EventID, "message_id", event.MessageID)

	if event.EventID == "" || event.MessageID == "" {
		log.Warn("worker event missing ids")
		return nil
	}

	pk := store.PartitionKey(store.TypeEvent, event.EventID)
	sk := store.SortKey(store.TypeMessage, event.MessageID)
	message, err := store.Get[model.ScheduledMessage](ctx, h.store, pk, sk)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("scheduled message no longer exists, skipping")
			return nil
		}
		log.Error("failed to load scheduled message", "error", err)
		return err
	}
	if message.Status == model.MessageSent {
		log.Info("message already sent, skipping")
		return nil
	}

	text := fmt.Sprintf("🔔 Scheduled Message: *%s*", message.Content)
	if err := h.slack.Post(ctx, message.SlackChannel, text); err != nil {
		log.Warn("slack notification failed", "error", err)
	}

	if message.HasChannel(model.ChannelEmail) {
		recipients, err := h.resolveRecipients(ctx, pk, message)
		if err != nil {
			log.Error("failed to resolve recipients", "error", err)
			return err
		}

		subject := message.Subject
		if subject == "" {
			subject = "DataVibes Notification: " + message.Type
		}
		for _, to := range recipients {
			if err := h.email.Send(ctx, to, subject, message.Content); err != nil {
				log.Error("failed to send email", "to", to, "error", err)
				return err
			}
		}
		log.Info("emails sent", "recipients", len(recipients))
	}

	now := h.timestamp()
	message.Status = model.MessageSent
	message.SentAt = now
	message.UpdatedAt = now
	if err := store.Put(ctx, h.store, *message); err != nil {
		log.Error("failed to mark message sent", "error", err)
		return err
	}

	log.Info("scheduled message delivered")
	return nil
}

// resolveRecipients expands the message's recipient mode into email
// addresses. The all/going/maybe modes read the event's attendee items; an
// unset mode yields no recipients.
func (h *Handler) resolveRecipients(ctx context.Context, eventPK string, message *model.ScheduledMessage) ([]string, error) {
	switch message.RecipientType {
	case model.RecipientsCustom:
		return message.CustomRecipients, nil
	case model.RecipientsAll, model.RecipientsGoing, model.RecipientsMaybe:
		attendees, err := store.Query[model.Attendee](ctx, h.store, eventPK,
			store.QueryOptions{SortKeyPrefix: store.Prefix(store.TypeAttendee)})
		if err != nil {
			return nil, err
		}

		var recipients []string
		for _, a := range attendees {
			if a.Email == "" {
				continue
			}
			switch message.RecipientType {
			case model.RecipientsAll:
				recipients = append(recipients, a.Email)
			case model.RecipientsGoing:
				if a.Status == model.RSVPGoing {
					recipients = append(recipients, a.Email)
				}
			case model.RecipientsMaybe:
				if a.Status == model.RSVPMaybe {
					recipients = append(recipients, a.Email)
				}
			}
		}
		return recipients, nil
	default:
		return nil, nil
	}
}
