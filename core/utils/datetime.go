package utils

import "time"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// IsValidDate reports whether s is a well-formed YYYY-MM-DD date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsValidClock reports whether s is a well-formed HH:MM time of day.
func IsValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}
