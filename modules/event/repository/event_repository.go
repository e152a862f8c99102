package repository

import (
	"context"
	"database/sql"

	"eventsync-backend/core/database"
	"eventsync-backend/core/logger"
	"eventsync-backend/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepository handles event and participant rows.
type EventRepository struct {
	DB database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventsByCreator(ctx context.Context, creatorID uuid.UUID) ([]entity.Event, error)
	GetEventsByParticipant(ctx context.Context, userID uuid.UUID) ([]entity.Event, error)

	AddParticipant(ctx context.Context, participant *entity.EventParticipant) error
	GetParticipantsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantWithUser, error)
	GetParticipantByInviteToken(ctx context.Context, token string) (*entity.ParticipantWithUser, error)

	// FinalizeEvent performs the one-way Unfinalized -> Finalized
	// transition as a single conditional update. It returns nil, nil
	// when no unfinalized row matched (missing or already finalized).
	FinalizeEvent(ctx context.Context, id uuid.UUID, date, startTime, endTime string) (*entity.Event, error)

	// SaveRsvp updates will_attend for a submitted participant and
	// reports whether a row was touched.
	SaveRsvp(ctx context.Context, eventID uuid.UUID, inviteToken string, willAttend bool) (bool, error)
}

const eventColumns = `
	id, title, description, creator_id, slug, start_date, end_date,
	start_time, end_time, is_finalized, finalized_date,
	finalized_start_time, finalized_end_time, created_at, updated_at`

// ===================== Events =====================

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (title, description, creator_id, slug, start_date, end_date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.Title, event.Description, event.CreatorID, event.Slug,
		event.StartDate, event.EndDate, event.StartTime, event.EndTime)
	if err != nil {
		logger.Error("EventRepository:CreateEvent:Error:", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID:Error:", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) GetEventsByCreator(ctx context.Context, creatorID uuid.UUID) ([]entity.Event, error) {
	query := `SELECT` + eventColumns + `
		FROM events
		WHERE creator_id = $1
		ORDER BY created_at DESC`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, creatorID)
	if err != nil {
		logger.Error("EventRepository:GetEventsByCreator:Error:", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) GetEventsByParticipant(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	query := `SELECT` + eventColumnsPrefixed("e") + `
		FROM events e
		JOIN event_participants p ON p.event_id = e.id
		WHERE p.user_id = $1 AND e.creator_id <> $1
		ORDER BY e.created_at DESC`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, userID)
	if err != nil {
		logger.Error("EventRepository:GetEventsByParticipant:Error:", err)
		return nil, err
	}

	return events, nil
}

// FinalizeEvent: the WHERE clause carries the not-yet-finalized guard
// so the check and the update are one atomic statement, not
// check-then-act across two round trips.
func (r *EventRepository) FinalizeEvent(ctx context.Context, id uuid.UUID, date, startTime, endTime string) (*entity.Event, error) {
	query := `
		UPDATE events
		SET is_finalized = true,
		    finalized_date = $2,
		    finalized_start_time = $3,
		    finalized_end_time = $4,
		    updated_at = NOW()
		WHERE id = $1 AND is_finalized = false
		RETURNING` + eventColumns

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id, date, startTime, endTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:FinalizeEvent:Error:", err)
		return nil, err
	}

	return &event, nil
}

// ===================== Participants =====================

func (r *EventRepository) AddParticipant(ctx context.Context, participant *entity.EventParticipant) error {
	query := `
		INSERT INTO event_participants (event_id, user_id, invite_token)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO NOTHING
		RETURNING id, created_at
	`

	err := r.DB.GetContext(ctx, participant, query,
		participant.EventID, participant.UserID, participant.InviteToken)
	if err != nil {
		if err == sql.ErrNoRows {
			// already invited; keep the existing row
			return nil
		}
		logger.Error("EventRepository:AddParticipant:Error:", err)
		return err
	}

	return nil
}

func (r *EventRepository) GetParticipantsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantWithUser, error) {
	query := `
		SELECT p.id, p.event_id, p.user_id, p.invite_token, p.has_submitted,
		       p.will_attend, p.created_at,
		       u.name AS user_name, u.email AS user_email
		FROM event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id = $1
		ORDER BY p.created_at
	`

	var participants []entity.ParticipantWithUser
	err := r.DB.SelectContext(ctx, &participants, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetParticipantsByEventID:Error:", err)
		return nil, err
	}

	return participants, nil
}

func (r *EventRepository) GetParticipantByInviteToken(ctx context.Context, token string) (*entity.ParticipantWithUser, error) {
	query := `
		SELECT p.id, p.event_id, p.user_id, p.invite_token, p.has_submitted,
		       p.will_attend, p.created_at,
		       u.name AS user_name, u.email AS user_email
		FROM event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.invite_token = $1
	`

	var participant entity.ParticipantWithUser
	err := r.DB.GetContext(ctx, &participant, query, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetParticipantByInviteToken:Error:", err)
		return nil, err
	}

	return &participant, nil
}

func (r *EventRepository) SaveRsvp(ctx context.Context, eventID uuid.UUID, inviteToken string, willAttend bool) (bool, error) {
	query := `
		UPDATE event_participants
		SET will_attend = $3
		WHERE event_id = $1 AND invite_token = $2 AND has_submitted = true
	`

	result, err := r.DB.ExecResultContext(ctx, query, eventID, inviteToken, willAttend)
	if err != nil {
		logger.Error("EventRepository:SaveRsvp:Error:", err)
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.Error("EventRepository:SaveRsvp:RowsAffected:Error:", err)
		return false, err
	}

	return affected > 0, nil
}

// eventColumnsPrefixed qualifies the shared column list for joins.
func eventColumnsPrefixed(alias string) string {
	return `
	` + alias + `.id, ` + alias + `.title, ` + alias + `.description, ` + alias + `.creator_id, ` + alias + `.slug,
	` + alias + `.start_date, ` + alias + `.end_date, ` + alias + `.start_time, ` + alias + `.end_time,
	` + alias + `.is_finalized, ` + alias + `.finalized_date, ` + alias + `.finalized_start_time,
	` + alias + `.finalized_end_time, ` + alias + `.created_at, ` + alias + `.updated_at`
}
