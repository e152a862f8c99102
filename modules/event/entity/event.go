package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a schedulable activity with a candidate date range. Dates
// travel as YYYY-MM-DD and times as HH:MM strings end to end, so
// lexicographic order is chronological order.
type Event struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatorID   uuid.UUID `db:"creator_id" json:"creator_id"`
	Slug        string    `db:"slug" json:"slug"`
	StartDate   string    `db:"start_date" json:"start_date"`
	EndDate     string    `db:"end_date" json:"end_date"`
	StartTime   *string   `db:"start_time" json:"start_time,omitempty"`
	EndTime     *string   `db:"end_time" json:"end_time,omitempty"`

	// Finalization state. The three finalized fields are written
	// together by the single conditional update and are never
	// partially set.
	IsFinalized        bool    `db:"is_finalized" json:"is_finalized"`
	FinalizedDate      *string `db:"finalized_date" json:"finalized_date,omitempty"`
	FinalizedStartTime *string `db:"finalized_start_time" json:"finalized_start_time,omitempty"`
	FinalizedEndTime   *string `db:"finalized_end_time" json:"finalized_end_time,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
