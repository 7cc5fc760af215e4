package utils

import (
	"strings"
	"time"
)

// Layout del parámetro start_date/end_date de la API de REE (sin separador "T")
const reeWindowLayout = "2006-01-0215:04"

// FormatHour formats a timestamp as "HH:MM" in its own offset
func FormatHour(t time.Time) string {
	return t.Format("15:04")
}

// FormatDay formats a date as "YYYY-MM-DD"
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// StartOfDay returns local midnight of t in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameLocalDate reports whether a and b fall on the same calendar day in loc
func SameLocalDate(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// RequestWindow returns the start/end query values covering day, 00:00 to 23:59
func RequestWindow(day time.Time) (string, string) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 0, 0, day.Location())
	return start.Format(reeWindowLayout), end.Format(reeWindowLayout)
}

// ParseTimestamp parses an RFC 3339 timestamp, removing any embedded spaces first
func ParseTimestamp(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.ReplaceAll(raw, " ", ""))
}
