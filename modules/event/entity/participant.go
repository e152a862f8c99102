package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventParticipant tracks one invited person per event. WillAttend is
// tri-state: nil until the participant RSVPs after finalization.
type EventParticipant struct {
	ID           uuid.UUID `db:"id" json:"id"`
	EventID      uuid.UUID `db:"event_id" json:"event_id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	InviteToken  string    `db:"invite_token" json:"-"`
	HasSubmitted bool      `db:"has_submitted" json:"has_submitted"`
	WillAttend   *bool     `db:"will_attend" json:"will_attend"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ParticipantWithUser joins the participant row with its user's
// identity, for participant listings and the notification wave.
type ParticipantWithUser struct {
	EventParticipant
	UserName  string `db:"user_name" json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
}
