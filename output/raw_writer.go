package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"sitelog/internal/timeutil"
	"sitelog/logentry"
)

var rawHeaders = []string{
	"Date", "Site", "Kst", "Employee", "Activity",
	"Start", "End", "DurationHours", "Fraction", "Result", "Notes",
}

// WriteRawEntries exports plain entry rows with all fields, one row per
// entry. The output round-trips through the importer.
func WriteRawEntries(path, format string, entries []logentry.Entry) error {
	normalized, err := normalizeFormat(format)
	if err != nil {
		return err
	}
	if !Available(normalized) {
		return fmt.Errorf("%w: %s", ErrCapabilityUnavailable, normalized)
	}

	switch normalized {
	case "csv":
		return writeRawEntriesCSV(path, entries)
	default:
		return writeRawEntriesExcel(path, entries)
	}
}

func rawEntryRow(entry logentry.Entry) []string {
	return []string{
		timeutil.FormatDate(entry.Date),
		entry.SiteName,
		entry.Kst,
		entry.Employee,
		entry.Activity,
		entryClock(entry.StartTime),
		entryClock(entry.EndTime),
		entryDuration(entry),
		fmt.Sprintf("%.2f", entry.DayFraction),
		entry.Result,
		entry.Notes,
	}
}

func writeRawEntriesCSV(path string, entries []logentry.Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(rawHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, entry := range entries {
		if err := writer.Write(rawEntryRow(entry)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

func writeRawEntriesExcel(path string, entries []logentry.Entry) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	rows := make([][]any, 0, len(entries)+1)

	header := make([]any, len(rawHeaders))
	for i, name := range rawHeaders {
		header[i] = name
	}
	rows = append(rows, header)

	for _, entry := range entries {
		row := make([]any, 0, len(rawHeaders))
		for _, value := range rawEntryRow(entry) {
			row = append(row, value)
		}
		rows = append(rows, row)
	}

	if err := writeSheet(file, sheet, rows); err != nil {
		return err
	}
	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}
