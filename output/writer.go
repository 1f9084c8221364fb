// Package output materializes monthly reports as delimited or spreadsheet
// files. The CSV engine is always present; richer engines register themselves
// and absence is reported, never silently downgraded.
package output

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"sitelog/logentry"
	"sitelog/report"
)

// Report is the full export payload for one period: the raw entry detail plus
// the aggregated daily and monthly rows.
type Report struct {
	PeriodLabel string
	Entries     []logentry.Entry
	Daily       []report.DailyRow
	Totals      []report.MonthlyRow
}

type Writer interface {
	Write(path string, rep Report) error
}

var ErrCapabilityUnavailable = errors.New("export format engine unavailable")

// engines maps a normalized format name to its writer factory. Optional
// engines register in their file's init.
var engines = map[string]func() Writer{}

func registerEngine(format string, factory func() Writer) {
	engines[format] = factory
}

func WriterForFormat(format string) (Writer, error) {
	normalized, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	factory, ok := engines[normalized]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCapabilityUnavailable, normalized)
	}
	return factory(), nil
}

// Available reports whether an engine for the format is present, so callers
// can decide on a fallback before exporting.
func Available(format string) bool {
	normalized, err := normalizeFormat(format)
	if err != nil {
		return false
	}
	_, ok := engines[normalized]
	return ok
}

// Formats lists the registered export formats in stable order.
func Formats() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeFormat(value string) (string, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "csv":
		return "csv", nil
	case "excel", "xlsx":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// ReportFileName builds the export file name <prefix>_<year>_<MM>.<ext>.
func ReportFileName(prefix string, year int, month time.Month, format string) (string, error) {
	normalized, err := normalizeFormat(format)
	if err != nil {
		return "", err
	}
	ext := "csv"
	if normalized == "excel" {
		ext = "xlsx"
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = "monthly_report"
	}
	return fmt.Sprintf("%s_%04d_%02d.%s", prefix, year, int(month), ext), nil
}

// PeriodLabel is the canonical YYYY-MM label used in report headers.
func PeriodLabel(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
