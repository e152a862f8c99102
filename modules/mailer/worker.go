package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// RegisterHandlers wires the mail task handlers onto the worker mux.
// A handler error makes asynq redeliver the task with backoff, which
// is the retry policy for notification dispatch.
func RegisterHandlers(mux *asynq.ServeMux, sender Sender) {
	mux.HandleFunc(TaskTypeVerificationEmail, func(ctx context.Context, t *asynq.Task) error {
		var p VerificationEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("invalid verification email payload: %w", err)
		}
		return sender.SendVerificationEmail(ctx, p.To, p.Code)
	})

	mux.HandleFunc(TaskTypeInviteEmail, func(ctx context.Context, t *asynq.Task) error {
		var p InviteEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("invalid invite email payload: %w", err)
		}
		return sender.SendEventInviteEmail(ctx, p.To, p.EventTitle, p.InviteLink)
	})

	mux.HandleFunc(TaskTypeFinalizedEmail, func(ctx context.Context, t *asynq.Task) error {
		var p FinalizedEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("invalid finalized email payload: %w", err)
		}
		return sender.SendEventFinalizedEmail(ctx, p.To, p.EventTitle, p.Date, p.TimeRange)
	})
}
