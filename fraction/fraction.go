// Package fraction converts logged work time into day fractions. All rounding
// of fractions in the application goes through RoundToStep so interval and
// report values never disagree on the policy.
package fraction

import (
	"errors"
	"fmt"
	"math"

	"sitelog/internal/timeutil"
)

var (
	ErrInvalidTimeRange     = errors.New("end time must be after start time")
	ErrInvalidConfiguration = errors.New("invalid workday configuration")
	ErrFractionOutOfRange   = errors.New("day fraction out of range")
)

// Result is a validated day fraction with its worked duration in hours.
type Result struct {
	Fraction      float64
	DurationHours float64
}

// Compute derives the day fraction for a start/end interval: the worked hours
// divided by the workday length, snapped to the rounding step. A fraction that
// snaps above a full day is rejected, never clamped.
func Compute(start, end timeutil.Clock, workdayHours, step float64) (Result, error) {
	if workdayHours <= 0 {
		return Result{}, fmt.Errorf("%w: workday hours must be > 0, got %v", ErrInvalidConfiguration, workdayHours)
	}
	if step <= 0 || step > 1.0 {
		return Result{}, fmt.Errorf("%w: rounding step must be in (0, 1], got %v", ErrInvalidConfiguration, step)
	}
	if end <= start {
		return Result{}, fmt.Errorf("%w: %s to %s", ErrInvalidTimeRange, start, end)
	}

	durationHours := float64(end-start) / 60.0
	rounded := RoundToStep(durationHours/workdayHours, step)
	if rounded > 1.0 {
		return Result{}, fmt.Errorf("%w: %.2f exceeds a full day", ErrFractionOutOfRange, rounded)
	}
	if rounded <= 0 {
		return Result{}, fmt.Errorf("%w: %v hours round to zero at step %v", ErrFractionOutOfRange, durationHours, step)
	}

	return Result{Fraction: rounded, DurationHours: roundHours(durationHours)}, nil
}

// ValidateDirect checks a directly supplied day fraction (fraction mode). The
// value is range-checked but not re-snapped; the duration is back-computed for
// display and export consistency.
func ValidateDirect(dayFraction, workdayHours float64) (Result, error) {
	if workdayHours <= 0 {
		return Result{}, fmt.Errorf("%w: workday hours must be > 0, got %v", ErrInvalidConfiguration, workdayHours)
	}
	if dayFraction <= 0 || dayFraction > 1.0 {
		return Result{}, fmt.Errorf("%w: %v not in (0, 1]", ErrFractionOutOfRange, dayFraction)
	}
	return Result{
		Fraction:      dayFraction,
		DurationHours: roundHours(dayFraction * workdayHours),
	}, nil
}

// RoundToStep snaps value to the nearest multiple of step, ties away from
// zero, and rounds the result to 2 decimal places. Idempotent for any step.
func RoundToStep(value, step float64) float64 {
	if step <= 0 {
		return roundHours(value)
	}
	quotient := value / step
	var snapped float64
	if quotient >= 0 {
		// The epsilon keeps exact ties from landing just below .5 in
		// binary floating point.
		snapped = math.Floor(quotient + 0.5 + 1e-9)
	} else {
		snapped = math.Ceil(quotient - 0.5 - 1e-9)
	}
	return roundHours(snapped * step)
}

func roundHours(value float64) float64 {
	return math.Round(value*100) / 100
}
