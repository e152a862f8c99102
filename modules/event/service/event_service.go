package service

import (
	"context"
	"fmt"
	"strings"

	"eventsync-backend/core/config"
	"eventsync-backend/core/errors"
	"eventsync-backend/core/logger"
	"eventsync-backend/core/utils"
	authrepo "eventsync-backend/modules/auth/repository"
	"eventsync-backend/modules/event/dto"
	"eventsync-backend/modules/event/entity"
	"eventsync-backend/modules/event/repository"
	"eventsync-backend/modules/mailer"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// EventService handles event lifecycle business logic.
type EventService struct {
	repo       repository.EventRepositoryInterface
	users      authrepo.UserRepositoryInterface
	dispatcher mailer.Dispatcher
}

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, creatorID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEventByID(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	GetDashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, *errors.AppError)
	GetInviteByToken(ctx context.Context, token string) (*dto.InviteResponse, *errors.AppError)
	FinalizeEvent(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID, req *dto.FinalizeEventRequest) (*dto.EventResponse, *errors.AppError)
	SaveRsvp(ctx context.Context, eventID uuid.UUID, req *dto.RsvpRequest) *errors.AppError
	GetParticipation(ctx context.Context, eventID uuid.UUID) (*dto.ParticipationResponse, *errors.AppError)
}

func NewEventService(
	repo repository.EventRepositoryInterface,
	users authrepo.UserRepositoryInterface,
	dispatcher mailer.Dispatcher,
) EventServiceInterface {
	return &EventService{
		repo:       repo,
		users:      users,
		dispatcher: dispatcher,
	}
}

// CreateEvent creates the event and one participant per invited email.
// Invitees are found-or-created as users; a failure for one email is
// logged and must not sink the others.
func (s *EventService) CreateEvent(ctx context.Context, creatorID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	if appErr := validateCreateEvent(req); appErr != nil {
		return nil, appErr
	}

	event := &entity.Event{
		Title:     strings.TrimSpace(req.Title),
		CreatorID: creatorID,
		Slug:      slug.Make(req.Title) + "-" + utils.GenerateID(),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Description != "" {
		event.Description = &req.Description
	}
	if req.StartTime != "" {
		event.StartTime = &req.StartTime
	}
	if req.EndTime != "" {
		event.EndTime = &req.EndTime
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create event", err)
	}

	for _, rawEmail := range req.ParticipantEmails {
		email := strings.ToLower(strings.TrimSpace(rawEmail))
		if email == "" {
			continue
		}

		user, err := s.users.FindOrCreate(ctx, email, nameFromEmail(email))
		if err != nil {
			logger.Error("EventService:CreateEvent:FindOrCreate:Error:", err)
			continue
		}

		participant := &entity.EventParticipant{
			EventID:     created.ID,
			UserID:      user.ID,
			InviteToken: utils.GenerateInviteToken(),
		}
		if err := s.repo.AddParticipant(ctx, participant); err != nil {
			logger.Error("EventService:CreateEvent:AddParticipant:Error:", err)
			continue
		}

		link := inviteLink(participant.InviteToken)
		if err := s.dispatcher.DispatchInviteEmail(ctx, email, created.Title, link); err != nil {
			logger.Error("EventService:CreateEvent:DispatchInvite:Error:", err)
		}
	}

	participants, err := s.repo.GetParticipantsByEventID(ctx, created.ID)
	if err != nil {
		logger.Error("EventService:CreateEvent:GetParticipants:Error:", err)
	}

	return dto.ToEventResponse(created, participants), nil
}

// GetEventByID returns the event for its creator or any participant.
func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	participants, err := s.repo.GetParticipantsByEventID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get participants", err)
	}

	if event.CreatorID != requesterID && !isParticipant(participants, requesterID) {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	return dto.ToEventResponse(event, participants), nil
}

func (s *EventService) GetDashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, *errors.AppError) {
	created, err := s.repo.GetEventsByCreator(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get events", err)
	}

	participating, err := s.repo.GetEventsByParticipant(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get events", err)
	}

	resp := &dto.DashboardResponse{
		Created:       make([]dto.EventResponse, 0, len(created)),
		Participating: make([]dto.EventResponse, 0, len(participating)),
	}
	for _, e := range created {
		resp.Created = append(resp.Created, *dto.ToEventResponse(&e, nil))
	}
	for _, e := range participating {
		resp.Participating = append(resp.Participating, *dto.ToEventResponse(&e, nil))
	}

	return resp, nil
}

// GetInviteByToken is the public invite-page lookup.
func (s *EventService) GetInviteByToken(ctx context.Context, token string) (*dto.InviteResponse, *errors.AppError) {
	if token == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invite token is required", nil)
	}

	participant, err := s.repo.GetParticipantByInviteToken(ctx, token)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to resolve invite", err)
	}
	if participant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Invite not found", nil)
	}

	event, err := s.repo.GetEventByID(ctx, participant.EventID)
	if err != nil || event == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}

	return &dto.InviteResponse{
		Event:       *dto.ToEventResponse(event, nil),
		Participant: dto.ToParticipantResponse(participant),
	}, nil
}

// FinalizeEvent runs the Finalization Gate: validation before any
// mutation, one conditional update, then the notification wave.
func (s *EventService) FinalizeEvent(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID, req *dto.FinalizeEventRequest) (*dto.EventResponse, *errors.AppError) {
	if req.FinalizedDate == "" || req.FinalizedStartTime == "" || req.FinalizedEndTime == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "finalizedDate, finalizedStartTime and finalizedEndTime are required", nil)
	}
	if !utils.IsValidDate(req.FinalizedDate) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "finalizedDate must be YYYY-MM-DD", nil)
	}
	if !utils.IsValidClock(req.FinalizedStartTime) || !utils.IsValidClock(req.FinalizedEndTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "times must be HH:MM", nil)
	}

	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil || event.CreatorID != requesterID {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	finalized, err := s.repo.FinalizeEvent(ctx, eventID, req.FinalizedDate, req.FinalizedStartTime, req.FinalizedEndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to finalize event", err)
	}
	if finalized == nil {
		// the guarded update matched nothing: someone else won the race
		return nil, errors.NewAppError(errors.ErrAlreadyFinalized, "Event is already finalized", nil)
	}

	s.notifyParticipants(ctx, finalized)

	participants, err := s.repo.GetParticipantsByEventID(ctx, eventID)
	if err != nil {
		logger.Error("EventService:FinalizeEvent:GetParticipants:Error:", err)
	}

	return dto.ToEventResponse(finalized, participants), nil
}

// notifyParticipants queues one finalized email per participant. A
// failure for one participant never blocks the others; delivery retry
// is the queue's job.
func (s *EventService) notifyParticipants(ctx context.Context, event *entity.Event) {
	participants, err := s.repo.GetParticipantsByEventID(ctx, event.ID)
	if err != nil {
		logger.Error("EventService:NotifyParticipants:GetParticipants:Error:", err)
		return
	}

	timeRange := fmt.Sprintf("%s - %s", deref(event.FinalizedStartTime), deref(event.FinalizedEndTime))
	for _, p := range participants {
		if err := s.dispatcher.DispatchFinalizedEmail(ctx, p.UserEmail, event.Title, deref(event.FinalizedDate), timeRange); err != nil {
			logger.Error("EventService:NotifyParticipants:Dispatch:Error:", "error", err, "email", p.UserEmail)
		}
	}
}

// SaveRsvp records the attendance answer for a submitted participant.
func (s *EventService) SaveRsvp(ctx context.Context, eventID uuid.UUID, req *dto.RsvpRequest) *errors.AppError {
	if req.InviteToken == "" || req.WillAttend == nil {
		return errors.NewAppError(errors.ErrInvalidInput, "inviteToken and willAttend are required", nil)
	}

	updated, err := s.repo.SaveRsvp(ctx, eventID, req.InviteToken, *req.WillAttend)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to save RSVP", err)
	}
	if updated {
		return nil
	}

	participant, err := s.repo.GetParticipantByInviteToken(ctx, req.InviteToken)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to save RSVP", err)
	}
	if participant == nil || participant.EventID != eventID {
		return errors.NewAppError(errors.ErrNotFound, "Participant not found", nil)
	}
	return errors.NewAppError(errors.ErrInvalidInput, "participant has not submitted availability", nil)
}

// GetParticipation computes the derived tallies; nothing is cached,
// the partition is recomputed on read.
func (s *EventService) GetParticipation(ctx context.Context, eventID uuid.UUID) (*dto.ParticipationResponse, *errors.AppError) {
	participants, err := s.repo.GetParticipantsByEventID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get participants", err)
	}
	return BuildParticipation(participants), nil
}

// BuildParticipation partitions participants by submission and RSVP
// state.
func BuildParticipation(participants []entity.ParticipantWithUser) *dto.ParticipationResponse {
	resp := &dto.ParticipationResponse{
		TotalParticipants: len(participants),
		Attending:         []dto.ParticipantResponse{},
		Declined:          []dto.ParticipantResponse{},
		Pending:           []dto.ParticipantResponse{},
	}

	for _, p := range participants {
		if p.HasSubmitted {
			resp.SubmittedCount++
		}

		pr := dto.ToParticipantResponse(&p)
		switch {
		case p.WillAttend == nil:
			resp.Pending = append(resp.Pending, pr)
		case *p.WillAttend:
			resp.RespondedCount++
			resp.Attending = append(resp.Attending, pr)
		default:
			resp.RespondedCount++
			resp.Declined = append(resp.Declined, pr)
		}
	}

	resp.AttendingCount = len(resp.Attending)
	resp.DeclinedCount = len(resp.Declined)
	resp.PendingCount = len(resp.Pending)
	return resp
}

func validateCreateEvent(req *dto.CreateEventRequest) *errors.AppError {
	if strings.TrimSpace(req.Title) == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}
	if req.StartDate == "" || req.EndDate == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "startDate and endDate are required", nil)
	}
	if !utils.IsValidDate(req.StartDate) || !utils.IsValidDate(req.EndDate) {
		return errors.NewAppError(errors.ErrInvalidInput, "dates must be YYYY-MM-DD", nil)
	}
	if req.StartDate > req.EndDate {
		return errors.NewAppError(errors.ErrInvalidInput, "startDate must not be after endDate", nil)
	}
	if req.StartTime != "" && !utils.IsValidClock(req.StartTime) {
		return errors.NewAppError(errors.ErrInvalidInput, "startTime must be HH:MM", nil)
	}
	if req.EndTime != "" && !utils.IsValidClock(req.EndTime) {
		return errors.NewAppError(errors.ErrInvalidInput, "endTime must be HH:MM", nil)
	}
	return nil
}

func isParticipant(participants []entity.ParticipantWithUser, userID uuid.UUID) bool {
	for _, p := range participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

func inviteLink(token string) string {
	base := "http://localhost:3000"
	if cfg, ok := config.GetSafe(); ok {
		base = strings.TrimSuffix(cfg.Server.PublicURL, "/")
	}
	return base + "/invite/" + token
}

func nameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
