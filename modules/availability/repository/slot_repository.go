package repository

import (
	"context"

	"eventsync-backend/core/database"
	"eventsync-backend/core/logger"
	"eventsync-backend/modules/availability/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SlotRepository handles availability_slots rows.
type SlotRepository struct {
	DB database.IDatabase
}

func NewSlotRepository(db database.IDatabase) *SlotRepository {
	return &SlotRepository{DB: db}
}

type SlotRepositoryInterface interface {
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.SlotWithUser, error)

	// ReplaceForUser swaps the user's slot set for the event and marks
	// the participant submitted, all inside one transaction so a
	// concurrent submission can never observe a half-replaced set.
	ReplaceForUser(ctx context.Context, eventID, userID uuid.UUID, slots []entity.AvailabilitySlot) error
}

func (r *SlotRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.SlotWithUser, error) {
	query := `
		SELECT s.id, s.event_id, s.user_id, s.date, s.start_time, s.end_time, s.created_at,
		       u.name AS user_name
		FROM availability_slots s
		JOIN users u ON u.id = s.user_id
		WHERE s.event_id = $1
		ORDER BY s.date, s.start_time, s.end_time
	`

	var slots []entity.SlotWithUser
	err := r.DB.SelectContext(ctx, &slots, query, eventID)
	if err != nil {
		logger.Error("SlotRepository:GetByEventID:Error:", err)
		return nil, err
	}

	return slots, nil
}

func (r *SlotRepository) ReplaceForUser(ctx context.Context, eventID, userID uuid.UUID, slots []entity.AvailabilitySlot) error {
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM availability_slots WHERE event_id = $1 AND user_id = $2`,
			eventID, userID); err != nil {
			return err
		}

		for _, s := range slots {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO availability_slots (event_id, user_id, date, start_time, end_time)
				 VALUES ($1, $2, $3, $4, $5)`,
				eventID, userID, s.Date, s.StartTime, s.EndTime); err != nil {
				return err
			}
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE event_participants SET has_submitted = true WHERE event_id = $1 AND user_id = $2`,
			eventID, userID)
		return err
	})
	if err != nil {
		logger.Error("SlotRepository:ReplaceForUser:Error:", err)
		return err
	}

	return nil
}
