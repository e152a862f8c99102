package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is anyone known to the system, organizer or invitee. Users are
// created lazily the first time an email shows up (login or invite).
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
