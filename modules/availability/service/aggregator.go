package service

import (
	"sort"
	"time"

	"eventsync-backend/core/utils"
	"eventsync-backend/modules/availability/entity"

	"github.com/google/uuid"
)

// RankSlots groups slots by exact (date, start, end) key and orders
// the buckets by distinct-participant count descending, then date,
// then start time. Grouping is exact-match only, no interval merging.
// It is a pure projection over the snapshot: no error paths, empty in
// means empty out, and totalParticipants = 0 yields 0 percentages
// rather than NaN.
func RankSlots(slots []entity.SlotWithUser, totalParticipants int) []entity.RankedSlot {
	type bucket struct {
		slot  entity.RankedSlot
		users map[uuid.UUID]bool
	}

	buckets := make(map[[3]string]*bucket)
	for _, s := range slots {
		key := [3]string{s.Date, s.StartTime, s.EndTime}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				slot: entity.RankedSlot{
					Date:      s.Date,
					StartTime: s.StartTime,
					EndTime:   s.EndTime,
				},
				users: make(map[uuid.UUID]bool),
			}
			buckets[key] = b
		}
		// count each participant once per bucket, however many times
		// they submitted the identical window
		if !b.users[s.UserID] {
			b.users[s.UserID] = true
			b.slot.UserNames = append(b.slot.UserNames, s.UserName)
		}
	}

	ranked := make([]entity.RankedSlot, 0, len(buckets))
	for _, b := range buckets {
		b.slot.Count = len(b.users)
		if totalParticipants > 0 {
			b.slot.Percentage = float64(b.slot.Count) / float64(totalParticipants) * 100
		}
		ranked = append(ranked, b.slot)
	}

	// ISO dates and HH:MM times sort chronologically as strings.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if ranked[i].Date != ranked[j].Date {
			return ranked[i].Date < ranked[j].Date
		}
		return ranked[i].StartTime < ranked[j].StartTime
	})

	return ranked
}

// HeatmapCounts produces one entry per calendar day of the inclusive
// [startDate, endDate] range, dense: days without slots appear with
// count 0. Malformed or inverted ranges yield an empty sequence.
func HeatmapCounts(slots []entity.SlotWithUser, startDate, endDate string) []entity.HeatmapEntry {
	start, err := time.Parse(utils.DateLayout, startDate)
	if err != nil {
		return []entity.HeatmapEntry{}
	}
	end, err := time.Parse(utils.DateLayout, endDate)
	if err != nil || end.Before(start) {
		return []entity.HeatmapEntry{}
	}

	perDay := make(map[string]int)
	for _, s := range slots {
		perDay[s.Date]++
	}

	entries := make([]entity.HeatmapEntry, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := d.Format(utils.DateLayout)
		entries = append(entries, entity.HeatmapEntry{Date: day, Count: perDay[day]})
	}

	return entries
}
