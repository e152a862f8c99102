package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is one date + time window a participant declared
// workable. All slots for a (event, user) pair are replaced wholesale
// on every submission.
type AvailabilitySlot struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Date      string    `db:"date" json:"date"`             // YYYY-MM-DD
	StartTime string    `db:"start_time" json:"start_time"` // HH:MM
	EndTime   string    `db:"end_time" json:"end_time"`     // HH:MM
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SlotWithUser joins the slot with the submitter's display name for
// the results view.
type SlotWithUser struct {
	AvailabilitySlot
	UserName string `db:"user_name" json:"user_name"`
}
