package entity

// RankedSlot is one exact-match (date, start, end) bucket with the
// number of distinct participants who declared it.
type RankedSlot struct {
	Date       string   `json:"date"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
	UserNames  []string `json:"participants"`
}

// HeatmapEntry is the slot-row count for one calendar day. The count
// is raw rows, not distinct participants: someone contributing several
// windows on the same day raises it past the participant total, which
// display layers clamp.
type HeatmapEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
