package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a time of day expressed as minutes from midnight.
type Clock int

func (c Clock) String() string {
	minutes := int(c)
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (c Clock) Hours() float64 {
	return float64(c) / 60.0
}

// ParseClock parses a HH:MM time of day.
func ParseClock(value string) (Clock, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse clock %q (expected HH:MM): %w", value, err)
	}
	return Clock(parsed.Hour()*60 + parsed.Minute()), nil
}

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseDate parses a YYYY-MM-DD calendar date in the local location.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q (expected YYYY-MM-DD): %w", value, err)
	}
	return StartOfDay(parsed), nil
}

func FormatDate(value time.Time) string {
	return value.Format("2006-01-02")
}

// MonthRange returns the half-open range [first of month, first of next month).
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}
