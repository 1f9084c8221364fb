package importer

import (
	"fmt"

	"sitelog/config"
	"sitelog/fraction"
	"sitelog/logentry"
)

type Result struct {
	RowsRead    int
	RowsMapped  int
	RowsSkipped int
	Entries     []logentry.Entry
}

// Run reads an exported detail CSV and maps its rows back to entries. Rows
// with an empty date cell are skipped: the export's summary sections start
// with label rows that carry no date. Any other malformed row fails the run.
func Run(path string, cfg config.Config) (*Result, error) {
	reader := &CSVReader{}
	records, err := reader.Read(path)
	if err != nil {
		return nil, err
	}

	result := &Result{Entries: make([]logentry.Entry, 0, len(records))}
	result.RowsRead = len(records)

	for _, record := range records {
		if record.Get("date", "datum") == "" {
			result.RowsSkipped++
			continue
		}

		entry, err := mapRecord(record, cfg)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", record.RowNumber, err)
		}

		result.RowsMapped++
		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

func mapRecord(record Record, cfg config.Config) (logentry.Entry, error) {
	date, err := parseEntryDate(record.Get("date", "datum"))
	if err != nil {
		return logentry.Entry{}, err
	}

	start, err := parseOptionalClock(record.Get("start", "start_time", "von"))
	if err != nil {
		return logentry.Entry{}, err
	}
	end, err := parseOptionalClock(record.Get("end", "end_time", "bis"))
	if err != nil {
		return logentry.Entry{}, err
	}

	entry := logentry.Entry{
		Date:      date,
		Employee:  record.Get("employee", "mitarbeiter"),
		SiteName:  record.Get("site", "site_name", "baustelle"),
		Kst:       record.Get("kst", "cost_center"),
		Activity:  record.Get("activity", "taetigkeit", "tätigkeit"),
		StartTime: start,
		EndTime:   end,
		Result:    record.Get("result", "ergebnis"),
		Notes:     record.Get("notes", "bemerkung"),
	}

	if start != nil && end != nil {
		computed, err := fraction.Compute(*start, *end, cfg.Workday.Hours, cfg.Workday.RoundingStep)
		if err != nil {
			return logentry.Entry{}, err
		}
		entry.DayFraction = computed.Fraction
		entry.DurationHours = &computed.DurationHours
	} else {
		raw, err := parseFraction(record.Get("fraction", "day_fraction", "tagesanteil"))
		if err != nil {
			return logentry.Entry{}, err
		}
		validated, err := fraction.ValidateDirect(raw, cfg.Workday.Hours)
		if err != nil {
			return logentry.Entry{}, err
		}
		entry.DayFraction = validated.Fraction
	}

	if err := entry.Validate(); err != nil {
		return logentry.Entry{}, err
	}
	return entry, nil
}
