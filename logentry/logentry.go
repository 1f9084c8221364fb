package logentry

import (
	"fmt"
	"strings"
	"time"

	"sitelog/internal/timeutil"
)

// CaptureMode describes how an entry's day fraction was supplied.
type CaptureMode int

const (
	// ModeInterval derives the fraction from a start/end time pair.
	ModeInterval CaptureMode = iota
	// ModeFraction takes the day fraction directly without clock times.
	ModeFraction
)

// Entry is one logged work activity against a site and cost center.
type Entry struct {
	ID            int64
	Date          time.Time
	Employee      string
	SiteName      string
	Kst           string
	Activity      string
	StartTime     *timeutil.Clock
	EndTime       *timeutil.Clock
	DayFraction   float64
	DurationHours *float64
	Result        string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidationError reports a missing or inconsistent entry field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e Entry) Mode() CaptureMode {
	if e.StartTime != nil && e.EndTime != nil {
		return ModeInterval
	}
	return ModeFraction
}

func (m CaptureMode) String() string {
	if m == ModeInterval {
		return "interval"
	}
	return "fraction"
}

// Validate checks required fields and the capture-mode invariant: either both
// clock times are set (interval mode) or neither is (fraction mode).
func (e Entry) Validate() error {
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"employee", e.Employee},
		{"site_name", e.SiteName},
		{"kst", e.Kst},
		{"activity", e.Activity},
		{"result", e.Result},
	} {
		if strings.TrimSpace(field.value) == "" {
			return &ValidationError{Field: field.name, Reason: "must not be empty"}
		}
	}

	if (e.StartTime == nil) != (e.EndTime == nil) {
		return &ValidationError{Field: "start_time", Reason: "and end_time must be set together"}
	}
	if e.StartTime != nil && *e.EndTime <= *e.StartTime {
		return &ValidationError{Field: "end_time", Reason: "must be after start_time"}
	}
	if e.StartTime == nil && e.DurationHours != nil && *e.DurationHours <= 0 {
		return &ValidationError{Field: "duration_hours", Reason: "must be positive"}
	}
	if e.DayFraction <= 0 || e.DayFraction > 1.0 {
		return &ValidationError{Field: "day_fraction", Reason: "must be in (0, 1]"}
	}
	return nil
}
