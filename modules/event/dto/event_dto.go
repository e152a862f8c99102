package dto

import (
	"time"

	"eventsync-backend/modules/event/entity"
)

// ===================== Request DTOs =====================

// CreateEventRequest for creating a new event with invited emails.
type CreateEventRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	StartDate         string   `json:"startDate"` // YYYY-MM-DD
	EndDate           string   `json:"endDate"`   // YYYY-MM-DD
	StartTime         string   `json:"startTime"` // HH:MM, optional
	EndTime           string   `json:"endTime"`   // HH:MM, optional
	ParticipantEmails []string `json:"participantEmails"`
}

// FinalizeEventRequest fixes the event's actual date and time.
type FinalizeEventRequest struct {
	FinalizedDate      string `json:"finalizedDate"`
	FinalizedStartTime string `json:"finalizedStartTime"`
	FinalizedEndTime   string `json:"finalizedEndTime"`
}

// RsvpRequest records a participant's attendance answer.
type RsvpRequest struct {
	InviteToken string `json:"inviteToken"`
	WillAttend  *bool  `json:"willAttend"`
}

// ===================== Response DTOs =====================

type EventResponse struct {
	ID                 string                `json:"id"`
	Title              string                `json:"title"`
	Description        string                `json:"description,omitempty"`
	CreatorID          string                `json:"creator_id"`
	Slug               string                `json:"slug"`
	StartDate          string                `json:"start_date"`
	EndDate            string                `json:"end_date"`
	StartTime          string                `json:"start_time,omitempty"`
	EndTime            string                `json:"end_time,omitempty"`
	IsFinalized        bool                  `json:"is_finalized"`
	FinalizedDate      string                `json:"finalized_date,omitempty"`
	FinalizedStartTime string                `json:"finalized_start_time,omitempty"`
	FinalizedEndTime   string                `json:"finalized_end_time,omitempty"`
	Participants       []ParticipantResponse `json:"participants,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

type ParticipantResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	HasSubmitted bool   `json:"has_submitted"`
	WillAttend   *bool  `json:"will_attend"`
}

// DashboardResponse lists events the user created and events they were
// invited to.
type DashboardResponse struct {
	Created       []EventResponse `json:"created"`
	Participating []EventResponse `json:"participating"`
}

// InviteResponse is the public invite-page view resolved from a token.
type InviteResponse struct {
	Event       EventResponse       `json:"event"`
	Participant ParticipantResponse `json:"participant"`
}

// ParticipationResponse is the derived per-event tally: who submitted
// availability and, post-finalization, who answered the RSVP.
type ParticipationResponse struct {
	TotalParticipants int `json:"total_participants"`
	SubmittedCount    int `json:"submitted_count"`
	RespondedCount    int `json:"responded_count"`
	AttendingCount    int `json:"attending_count"`
	DeclinedCount     int `json:"declined_count"`
	PendingCount      int `json:"pending_count"`

	Attending []ParticipantResponse `json:"attending"`
	Declined  []ParticipantResponse `json:"declined"`
	Pending   []ParticipantResponse `json:"pending"`
}

// ===================== Mapper Functions =====================

func ToEventResponse(e *entity.Event, participants []entity.ParticipantWithUser) *EventResponse {
	resp := &EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		CreatorID:   e.CreatorID.String(),
		Slug:        e.Slug,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		IsFinalized: e.IsFinalized,
		CreatedAt:   e.CreatedAt,
	}

	if e.Description != nil {
		resp.Description = *e.Description
	}
	if e.StartTime != nil {
		resp.StartTime = *e.StartTime
	}
	if e.EndTime != nil {
		resp.EndTime = *e.EndTime
	}
	if e.FinalizedDate != nil {
		resp.FinalizedDate = *e.FinalizedDate
	}
	if e.FinalizedStartTime != nil {
		resp.FinalizedStartTime = *e.FinalizedStartTime
	}
	if e.FinalizedEndTime != nil {
		resp.FinalizedEndTime = *e.FinalizedEndTime
	}

	for _, p := range participants {
		resp.Participants = append(resp.Participants, ToParticipantResponse(&p))
	}

	return resp
}

func ToParticipantResponse(p *entity.ParticipantWithUser) ParticipantResponse {
	return ParticipantResponse{
		ID:           p.ID.String(),
		UserID:       p.UserID.String(),
		Name:         p.UserName,
		Email:        p.UserEmail,
		HasSubmitted: p.HasSubmitted,
		WillAttend:   p.WillAttend,
	}
}
