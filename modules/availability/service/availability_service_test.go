package service

import (
	"context"
	"testing"

	"eventsync-backend/core/errors"
	"eventsync-backend/modules/availability/dto"
	"eventsync-backend/modules/availability/entity"
	evententity "eventsync-backend/modules/event/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlotRepo struct {
	// slots keyed by user, mirroring the replace semantics
	byUser map[uuid.UUID][]entity.AvailabilitySlot
	events *fakeEventRepo
}

func newFakeSlotRepo(events *fakeEventRepo) *fakeSlotRepo {
	return &fakeSlotRepo{
		byUser: make(map[uuid.UUID][]entity.AvailabilitySlot),
		events: events,
	}
}

func (r *fakeSlotRepo) GetByEventID(_ context.Context, eventID uuid.UUID) ([]entity.SlotWithUser, error) {
	var out []entity.SlotWithUser
	for _, slots := range r.byUser {
		for _, s := range slots {
			if s.EventID == eventID {
				out = append(out, entity.SlotWithUser{AvailabilitySlot: s})
			}
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ReplaceForUser(_ context.Context, eventID uuid.UUID, userID uuid.UUID, slots []entity.AvailabilitySlot) error {
	r.byUser[userID] = slots
	// the real transaction also marks the participant submitted
	for i := range r.events.participants {
		p := &r.events.participants[i]
		if p.EventID == eventID && p.UserID == userID {
			p.HasSubmitted = true
		}
	}
	return nil
}

type fakeEventRepo struct {
	events       map[uuid.UUID]*evententity.Event
	participants []evententity.ParticipantWithUser
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*evententity.Event)}
}

func (r *fakeEventRepo) CreateEvent(_ context.Context, e *evententity.Event) (*evententity.Event, error) {
	r.events[e.ID] = e
	return e, nil
}

func (r *fakeEventRepo) GetEventByID(_ context.Context, id uuid.UUID) (*evententity.Event, error) {
	return r.events[id], nil
}

func (r *fakeEventRepo) GetEventsByCreator(_ context.Context, _ uuid.UUID) ([]evententity.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) GetEventsByParticipant(_ context.Context, _ uuid.UUID) ([]evententity.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) AddParticipant(_ context.Context, p *evententity.EventParticipant) error {
	r.participants = append(r.participants, evententity.ParticipantWithUser{EventParticipant: *p})
	return nil
}

func (r *fakeEventRepo) GetParticipantsByEventID(_ context.Context, eventID uuid.UUID) ([]evententity.ParticipantWithUser, error) {
	var out []evententity.ParticipantWithUser
	for _, p := range r.participants {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) GetParticipantByInviteToken(_ context.Context, token string) (*evententity.ParticipantWithUser, error) {
	for i := range r.participants {
		if r.participants[i].InviteToken == token {
			return &r.participants[i], nil
		}
	}
	return nil, nil
}

func (r *fakeEventRepo) FinalizeEvent(_ context.Context, id uuid.UUID, date, startTime, endTime string) (*evententity.Event, error) {
	e := r.events[id]
	if e == nil || e.IsFinalized {
		return nil, nil
	}
	e.IsFinalized = true
	e.FinalizedDate = &date
	e.FinalizedStartTime = &startTime
	e.FinalizedEndTime = &endTime
	return e, nil
}

func (r *fakeEventRepo) SaveRsvp(_ context.Context, eventID uuid.UUID, inviteToken string, willAttend bool) (bool, error) {
	for i := range r.participants {
		p := &r.participants[i]
		if p.EventID == eventID && p.InviteToken == inviteToken && p.HasSubmitted {
			p.WillAttend = &willAttend
			return true, nil
		}
	}
	return false, nil
}

func seedParticipant(events *fakeEventRepo, eventID uuid.UUID, token string) uuid.UUID {
	userID := uuid.New()
	events.participants = append(events.participants, evententity.ParticipantWithUser{
		EventParticipant: evententity.EventParticipant{
			ID:          uuid.New(),
			EventID:     eventID,
			UserID:      userID,
			InviteToken: token,
		},
	})
	return userID
}

func TestSubmitAvailabilityReplacesSlots(t *testing.T) {
	events := newFakeEventRepo()
	slots := newFakeSlotRepo(events)
	svc := NewAvailabilityService(slots, events)

	eventID := uuid.New()
	userID := seedParticipant(events, eventID, "tok-abc")

	first := &dto.SubmitAvailabilityRequest{
		EventID:     eventID.String(),
		InviteToken: "tok-abc",
		Slots: []dto.SlotInput{
			{Date: "2024-01-02", StartTime: "09:00", EndTime: "10:00"},
			{Date: "2024-01-03", StartTime: "14:00", EndTime: "15:00"},
		},
	}
	require.Nil(t, svc.SubmitAvailability(context.Background(), first))
	require.Len(t, slots.byUser[userID], 2)

	submitted, err := events.GetParticipantsByEventID(context.Background(), eventID)
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.True(t, submitted[0].HasSubmitted)

	// a second submission replaces, it does not accumulate
	second := &dto.SubmitAvailabilityRequest{
		EventID:     eventID.String(),
		InviteToken: "tok-abc",
		Slots: []dto.SlotInput{
			{Date: "2024-01-05", StartTime: "11:00", EndTime: "12:00"},
		},
	}
	require.Nil(t, svc.SubmitAvailability(context.Background(), second))
	require.Len(t, slots.byUser[userID], 1)
	assert.Equal(t, "2024-01-05", slots.byUser[userID][0].Date)
}

func TestSubmitAvailabilityValidation(t *testing.T) {
	events := newFakeEventRepo()
	eventID := uuid.New()
	seedParticipant(events, eventID, "tok-abc")

	svc := NewAvailabilityService(newFakeSlotRepo(events), events)

	valid := dto.SlotInput{Date: "2024-01-02", StartTime: "09:00", EndTime: "10:00"}

	tests := []struct {
		name string
		req  *dto.SubmitAvailabilityRequest
	}{
		{"missing event id", &dto.SubmitAvailabilityRequest{InviteToken: "tok-abc", Slots: []dto.SlotInput{valid}}},
		{"missing token", &dto.SubmitAvailabilityRequest{EventID: eventID.String(), Slots: []dto.SlotInput{valid}}},
		{"empty slots", &dto.SubmitAvailabilityRequest{EventID: eventID.String(), InviteToken: "tok-abc"}},
		{"bad date", &dto.SubmitAvailabilityRequest{EventID: eventID.String(), InviteToken: "tok-abc",
			Slots: []dto.SlotInput{{Date: "02/01/2024", StartTime: "09:00", EndTime: "10:00"}}}},
		{"bad time", &dto.SubmitAvailabilityRequest{EventID: eventID.String(), InviteToken: "tok-abc",
			Slots: []dto.SlotInput{{Date: "2024-01-02", StartTime: "9am", EndTime: "10:00"}}}},
		{"inverted window", &dto.SubmitAvailabilityRequest{EventID: eventID.String(), InviteToken: "tok-abc",
			Slots: []dto.SlotInput{{Date: "2024-01-02", StartTime: "11:00", EndTime: "10:00"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := svc.SubmitAvailability(context.Background(), tt.req)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		})
	}
}

func TestSubmitAvailabilityUnknownToken(t *testing.T) {
	events := newFakeEventRepo()
	svc := NewAvailabilityService(newFakeSlotRepo(events), events)

	req := &dto.SubmitAvailabilityRequest{
		EventID:     uuid.New().String(),
		InviteToken: "no-such-token",
		Slots:       []dto.SlotInput{{Date: "2024-01-02", StartTime: "09:00", EndTime: "10:00"}},
	}

	appErr := svc.SubmitAvailability(context.Background(), req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestSubmitAvailabilityTokenForOtherEvent(t *testing.T) {
	events := newFakeEventRepo()
	seedParticipant(events, uuid.New(), "tok-other")
	svc := NewAvailabilityService(newFakeSlotRepo(events), events)

	req := &dto.SubmitAvailabilityRequest{
		EventID:     uuid.New().String(),
		InviteToken: "tok-other",
		Slots:       []dto.SlotInput{{Date: "2024-01-02", StartTime: "09:00", EndTime: "10:00"}},
	}

	appErr := svc.SubmitAvailability(context.Background(), req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestGetResults(t *testing.T) {
	events := newFakeEventRepo()
	slots := newFakeSlotRepo(events)
	svc := NewAvailabilityService(slots, events)

	creatorID := uuid.New()
	eventID := uuid.New()
	events.events[eventID] = &evententity.Event{
		ID:        eventID,
		Title:     "Team Offsite",
		CreatorID: creatorID,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-03",
	}

	aliceID := seedParticipant(events, eventID, "tok-alice")
	bobID := seedParticipant(events, eventID, "tok-bob")

	slots.byUser[aliceID] = []entity.AvailabilitySlot{
		{EventID: eventID, UserID: aliceID, Date: "2024-01-02", StartTime: "09:00", EndTime: "10:00"},
	}
	slots.byUser[bobID] = []entity.AvailabilitySlot{
		{EventID: eventID, UserID: bobID, Date: "2024-01-02", StartTime: "09:00", EndTime: "10:00"},
	}

	res, appErr := svc.GetResults(context.Background(), eventID, creatorID)
	require.Nil(t, appErr)
	require.NotNil(t, res)

	require.Len(t, res.Ranked, 1)
	assert.Equal(t, 2, res.Ranked[0].Count)
	assert.Equal(t, 100.0, res.Ranked[0].Percentage)

	require.Len(t, res.Heatmap, 3)
	assert.Equal(t, 0, res.Heatmap[0].Count)
	assert.Equal(t, 2, res.Heatmap[1].Count)
	assert.Equal(t, 0, res.Heatmap[2].Count)

	assert.Equal(t, 2, res.TotalSlots)
	assert.Equal(t, 2, res.Participation.TotalParticipants)
}

func TestGetResultsNotOwner(t *testing.T) {
	events := newFakeEventRepo()
	eventID := uuid.New()
	events.events[eventID] = &evententity.Event{ID: eventID, CreatorID: uuid.New()}

	svc := NewAvailabilityService(newFakeSlotRepo(events), events)

	res, appErr := svc.GetResults(context.Background(), eventID, uuid.New())
	require.NotNil(t, appErr)
	assert.Nil(t, res)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
