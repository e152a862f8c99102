package dto

import (
	"eventsync-backend/modules/availability/entity"
	eventdto "eventsync-backend/modules/event/dto"
)

// ===================== Request DTOs =====================

type SlotInput struct {
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
}

// SubmitAvailabilityRequest replaces the caller's slot set wholesale.
type SubmitAvailabilityRequest struct {
	EventID     string      `json:"eventId"`
	InviteToken string      `json:"inviteToken"`
	Slots       []SlotInput `json:"slots"`
}

// ===================== Response DTOs =====================

// ResultsResponse is the organizer's results dashboard: ranked overlap
// buckets, per-day heatmap and participation tallies.
type ResultsResponse struct {
	Event         eventdto.EventResponse         `json:"event"`
	Ranked        []entity.RankedSlot            `json:"ranked"`
	Heatmap       []entity.HeatmapEntry          `json:"heatmap"`
	Participation eventdto.ParticipationResponse `json:"participation"`
	TotalSlots    int                            `json:"total_slots"`
}
