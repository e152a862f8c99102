package service

import (
	"context"

	"eventsync-backend/core/errors"
	"eventsync-backend/core/utils"
	"eventsync-backend/modules/availability/dto"
	"eventsync-backend/modules/availability/entity"
	"eventsync-backend/modules/availability/repository"
	eventdto "eventsync-backend/modules/event/dto"
	eventrepo "eventsync-backend/modules/event/repository"
	eventservice "eventsync-backend/modules/event/service"

	"github.com/google/uuid"
)

// AvailabilityService handles slot submission and the results
// aggregation.
type AvailabilityService struct {
	slots  repository.SlotRepositoryInterface
	events eventrepo.EventRepositoryInterface
}

type AvailabilityServiceInterface interface {
	SubmitAvailability(ctx context.Context, req *dto.SubmitAvailabilityRequest) *errors.AppError
	GetResults(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID) (*dto.ResultsResponse, *errors.AppError)
}

func NewAvailabilityService(slots repository.SlotRepositoryInterface, events eventrepo.EventRepositoryInterface) AvailabilityServiceInterface {
	return &AvailabilityService{
		slots:  slots,
		events: events,
	}
}

// SubmitAvailability resolves the participant from the invite token
// and replaces their slot set. Validation happens before any mutation;
// the replace itself is one transaction.
func (s *AvailabilityService) SubmitAvailability(ctx context.Context, req *dto.SubmitAvailabilityRequest) *errors.AppError {
	if req.EventID == "" || req.InviteToken == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "eventId and inviteToken are required", nil)
	}
	if len(req.Slots) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "slots must not be empty", nil)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "invalid event ID", nil)
	}

	for _, slot := range req.Slots {
		if !utils.IsValidDate(slot.Date) {
			return errors.NewAppError(errors.ErrInvalidInput, "slot dates must be YYYY-MM-DD", nil)
		}
		if !utils.IsValidClock(slot.StartTime) || !utils.IsValidClock(slot.EndTime) {
			return errors.NewAppError(errors.ErrInvalidInput, "slot times must be HH:MM", nil)
		}
		if slot.StartTime >= slot.EndTime {
			return errors.NewAppError(errors.ErrInvalidInput, "slot startTime must be before endTime", nil)
		}
	}

	participant, err := s.events.GetParticipantByInviteToken(ctx, req.InviteToken)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to resolve participant", err)
	}
	if participant == nil || participant.EventID != eventID {
		return errors.NewAppError(errors.ErrNotFound, "Participant not found", nil)
	}

	slots := make([]entity.AvailabilitySlot, 0, len(req.Slots))
	for _, in := range req.Slots {
		slots = append(slots, entity.AvailabilitySlot{
			EventID:   eventID,
			UserID:    participant.UserID,
			Date:      in.Date,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}

	if err := s.slots.ReplaceForUser(ctx, eventID, participant.UserID, slots); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to save availability", err)
	}

	return nil
}

// GetResults assembles the organizer dashboard: ranked overlap,
// per-day heatmap over the event's candidate range, and participation
// tallies. Owner only.
func (s *AvailabilityService) GetResults(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID) (*dto.ResultsResponse, *errors.AppError) {
	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil || event.CreatorID != requesterID {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	participants, err := s.events.GetParticipantsByEventID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get participants", err)
	}

	slots, err := s.slots.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get availability", err)
	}

	return &dto.ResultsResponse{
		Event:         *eventdto.ToEventResponse(event, participants),
		Ranked:        RankSlots(slots, len(participants)),
		Heatmap:       HeatmapCounts(slots, event.StartDate, event.EndDate),
		Participation: *eventservice.BuildParticipation(participants),
		TotalSlots:    len(slots),
	}, nil
}
