package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sitelog/internal/timeutil"
)

func parseEntryDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	layouts := []string{
		"2006-01-02",
		"02.01.2006",
	}
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return timeutil.StartOfDay(parsed), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", raw)
}

// parseFraction accepts both decimal point and German decimal comma.
func parseFraction(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("empty fraction")
	}
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	fraction, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse fraction %q: %w", raw, err)
	}
	return fraction, nil
}

// parseOptionalClock returns nil for an empty cell.
func parseOptionalClock(raw string) (*timeutil.Clock, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := timeutil.ParseClock(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
