package service

import (
	"testing"

	"eventsync-backend/modules/availability/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(userID uuid.UUID, userName, date, start, end string) entity.SlotWithUser {
	return entity.SlotWithUser{
		AvailabilitySlot: entity.AvailabilitySlot{
			ID:        uuid.New(),
			EventID:   uuid.New(),
			UserID:    userID,
			Date:      date,
			StartTime: start,
			EndTime:   end,
		},
		UserName: userName,
	}
}

func TestRankSlotsEmpty(t *testing.T) {
	ranked := RankSlots(nil, 3)
	assert.Empty(t, ranked)
}

func TestRankSlotsFullOverlap(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	slots := []entity.SlotWithUser{
		slot(alice, "Alice", "2024-01-02", "09:00", "10:00"),
		slot(bob, "Bob", "2024-01-02", "09:00", "10:00"),
	}

	ranked := RankSlots(slots, 2)
	require.Len(t, ranked, 1)
	assert.Equal(t, "2024-01-02", ranked[0].Date)
	assert.Equal(t, "09:00", ranked[0].StartTime)
	assert.Equal(t, "10:00", ranked[0].EndTime)
	assert.Equal(t, 2, ranked[0].Count)
	assert.Equal(t, 100.0, ranked[0].Percentage)
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, ranked[0].UserNames)
}

func TestRankSlotsOrdering(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	slots := []entity.SlotWithUser{
		// count 1, latest date
		slot(c, "Carol", "2024-01-05", "09:00", "10:00"),
		// count 2
		slot(a, "Alice", "2024-01-03", "14:00", "15:00"),
		slot(b, "Bob", "2024-01-03", "14:00", "15:00"),
		// count 2, earlier date, wins the tie
		slot(a, "Alice", "2024-01-02", "09:00", "10:00"),
		slot(b, "Bob", "2024-01-02", "09:00", "10:00"),
		// count 2, same date as above, later start
		slot(a, "Alice", "2024-01-02", "11:00", "12:00"),
		slot(c, "Carol", "2024-01-02", "11:00", "12:00"),
	}

	ranked := RankSlots(slots, 3)
	require.Len(t, ranked, 4)

	assert.Equal(t, "2024-01-02", ranked[0].Date)
	assert.Equal(t, "09:00", ranked[0].StartTime)
	assert.Equal(t, "2024-01-02", ranked[1].Date)
	assert.Equal(t, "11:00", ranked[1].StartTime)
	assert.Equal(t, "2024-01-03", ranked[2].Date)
	assert.Equal(t, "2024-01-05", ranked[3].Date)
	assert.Equal(t, 1, ranked[3].Count)

	// counts never increase down the list
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Count, ranked[i].Count)
	}
}

func TestRankSlotsDeduplicatesPerParticipant(t *testing.T) {
	alice := uuid.New()

	slots := []entity.SlotWithUser{
		slot(alice, "Alice", "2024-01-02", "09:00", "10:00"),
		slot(alice, "Alice", "2024-01-02", "09:00", "10:00"),
	}

	ranked := RankSlots(slots, 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].Count)
	assert.Equal(t, 100.0, ranked[0].Percentage)
	assert.Equal(t, []string{"Alice"}, ranked[0].UserNames)
}

func TestRankSlotsZeroParticipants(t *testing.T) {
	alice := uuid.New()

	slots := []entity.SlotWithUser{
		slot(alice, "Alice", "2024-01-02", "09:00", "10:00"),
	}

	ranked := RankSlots(slots, 0)
	require.Len(t, ranked, 1)
	assert.Equal(t, 0.0, ranked[0].Percentage)
}

func TestRankSlotsExactMatchOnly(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	// overlapping but not identical windows stay separate buckets
	slots := []entity.SlotWithUser{
		slot(a, "Alice", "2024-01-02", "09:00", "11:00"),
		slot(b, "Bob", "2024-01-02", "09:00", "10:00"),
	}

	ranked := RankSlots(slots, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Count)
	assert.Equal(t, 1, ranked[1].Count)
}

func TestHeatmapCountsDense(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	slots := []entity.SlotWithUser{
		slot(a, "Alice", "2024-01-02", "09:00", "10:00"),
		slot(b, "Bob", "2024-01-02", "09:00", "10:00"),
	}

	entries := HeatmapCounts(slots, "2024-01-01", "2024-01-03")
	require.Len(t, entries, 3)
	assert.Equal(t, entity.HeatmapEntry{Date: "2024-01-01", Count: 0}, entries[0])
	assert.Equal(t, entity.HeatmapEntry{Date: "2024-01-02", Count: 2}, entries[1])
	assert.Equal(t, entity.HeatmapEntry{Date: "2024-01-03", Count: 0}, entries[2])
}

func TestHeatmapCountsRowsNotParticipants(t *testing.T) {
	alice := uuid.New()

	// one person, two windows on the same day
	slots := []entity.SlotWithUser{
		slot(alice, "Alice", "2024-01-01", "09:00", "10:00"),
		slot(alice, "Alice", "2024-01-01", "14:00", "15:00"),
	}

	entries := HeatmapCounts(slots, "2024-01-01", "2024-01-01")
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Count)
}

func TestHeatmapCountsSingleDayRange(t *testing.T) {
	entries := HeatmapCounts(nil, "2024-06-15", "2024-06-15")
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-06-15", entries[0].Date)
	assert.Equal(t, 0, entries[0].Count)
}

func TestHeatmapCountsBadRange(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"inverted range", "2024-01-05", "2024-01-01"},
		{"malformed start", "not-a-date", "2024-01-03"},
		{"malformed end", "2024-01-01", "03/01/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, HeatmapCounts(nil, tt.start, tt.end))
		})
	}
}

func TestHeatmapCountsIgnoresSlotsOutsideRange(t *testing.T) {
	alice := uuid.New()

	slots := []entity.SlotWithUser{
		slot(alice, "Alice", "2023-12-31", "09:00", "10:00"),
		slot(alice, "Alice", "2024-01-01", "09:00", "10:00"),
	}

	entries := HeatmapCounts(slots, "2024-01-01", "2024-01-02")
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Count)
	assert.Equal(t, 0, entries[1].Count)
}
