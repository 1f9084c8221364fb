package logentry

import (
	"errors"
	"testing"
	"time"

	"sitelog/internal/timeutil"
)

func validIntervalEntry() Entry {
	start := timeutil.Clock(8 * 60)
	end := timeutil.Clock(12 * 60)
	duration := 4.0
	return Entry{
		Date:          time.Date(2024, 6, 3, 0, 0, 0, 0, time.Local),
		Employee:      "Anna",
		SiteName:      "B12 Umgehung",
		Kst:           "100",
		Activity:      "Aufmaß",
		StartTime:     &start,
		EndTime:       &end,
		DayFraction:   0.5,
		DurationHours: &duration,
		Result:        "Querprofile aufgenommen",
	}
}

func TestValidate_AcceptsIntervalAndFractionMode(t *testing.T) {
	t.Parallel()

	interval := validIntervalEntry()
	if err := interval.Validate(); err != nil {
		t.Fatalf("interval entry should be valid: %v", err)
	}
	if interval.Mode() != ModeInterval {
		t.Fatalf("expected interval mode")
	}

	direct := validIntervalEntry()
	direct.StartTime = nil
	direct.EndTime = nil
	direct.DurationHours = nil
	direct.DayFraction = 0.25
	if err := direct.Validate(); err != nil {
		t.Fatalf("fraction entry should be valid: %v", err)
	}
	if direct.Mode() != ModeFraction {
		t.Fatalf("expected fraction mode")
	}
}

func TestValidate_RejectsMissingRequiredFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		field  string
		mutate func(*Entry)
	}{
		{"date", func(e *Entry) { e.Date = time.Time{} }},
		{"employee", func(e *Entry) { e.Employee = " " }},
		{"site_name", func(e *Entry) { e.SiteName = "" }},
		{"kst", func(e *Entry) { e.Kst = "" }},
		{"activity", func(e *Entry) { e.Activity = "" }},
		{"result", func(e *Entry) { e.Result = "" }},
	}

	for _, tc := range cases {
		entry := validIntervalEntry()
		tc.mutate(&entry)

		err := entry.Validate()
		if err == nil {
			t.Fatalf("expected validation error for %s", tc.field)
		}
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %T", err)
		}
		if validationErr.Field != tc.field {
			t.Fatalf("expected field %s, got %s", tc.field, validationErr.Field)
		}
	}
}

func TestValidate_RejectsHalfOpenInterval(t *testing.T) {
	t.Parallel()

	entry := validIntervalEntry()
	entry.EndTime = nil
	if err := entry.Validate(); err == nil {
		t.Fatalf("expected error when only start_time is set")
	}

	entry = validIntervalEntry()
	entry.StartTime = nil
	if err := entry.Validate(); err == nil {
		t.Fatalf("expected error when only end_time is set")
	}
}

func TestValidate_RejectsInvertedInterval(t *testing.T) {
	t.Parallel()

	entry := validIntervalEntry()
	*entry.EndTime = *entry.StartTime
	if err := entry.Validate(); err == nil {
		t.Fatalf("expected error for end_time == start_time")
	}
}

func TestValidate_RejectsFractionOutOfRange(t *testing.T) {
	t.Parallel()

	for _, fraction := range []float64{0, -0.25, 1.05} {
		entry := validIntervalEntry()
		entry.DayFraction = fraction
		if err := entry.Validate(); err == nil {
			t.Fatalf("expected error for fraction %v", fraction)
		}
	}
}
