package mailer

import (
	"context"
	"encoding/json"

	"eventsync-backend/core/logger"
	"eventsync-backend/core/queue"
)

// Dispatcher enqueues mail tasks for asynchronous delivery. Services
// depend on this interface, never on asynq directly.
type Dispatcher interface {
	DispatchVerificationEmail(ctx context.Context, to, code string) error
	DispatchInviteEmail(ctx context.Context, to, eventTitle, inviteLink string) error
	DispatchFinalizedEmail(ctx context.Context, to, eventTitle, date, timeRange string) error
}

type queueDispatcher struct {
	client queue.IClient
}

func NewDispatcher(client queue.IClient) Dispatcher {
	return &queueDispatcher{client: client}
}

func (d *queueDispatcher) enqueue(ctx context.Context, taskType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("MailDispatcher:Marshal:Error:", err)
		return err
	}
	return d.client.Enqueue(ctx, taskType, data)
}

func (d *queueDispatcher) DispatchVerificationEmail(ctx context.Context, to, code string) error {
	return d.enqueue(ctx, TaskTypeVerificationEmail, VerificationEmailPayload{To: to, Code: code})
}

func (d *queueDispatcher) DispatchInviteEmail(ctx context.Context, to, eventTitle, inviteLink string) error {
	return d.enqueue(ctx, TaskTypeInviteEmail, InviteEmailPayload{
		To:         to,
		EventTitle: eventTitle,
		InviteLink: inviteLink,
	})
}

func (d *queueDispatcher) DispatchFinalizedEmail(ctx context.Context, to, eventTitle, date, timeRange string) error {
	return d.enqueue(ctx, TaskTypeFinalizedEmail, FinalizedEmailPayload{
		To:         to,
		EventTitle: eventTitle,
		Date:       date,
		TimeRange:  timeRange,
	})
}
