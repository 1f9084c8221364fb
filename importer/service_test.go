package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sitelog/config"
	"sitelog/fraction"
	"sitelog/internal/timeutil"
	"sitelog/logentry"
	"sitelog/output"
)

func testConfig() config.Config {
	return config.Config{
		Workday: config.WorkdayConfig{Hours: 8.0, RoundingStep: 0.05},
	}
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "import.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestRun_MapsIntervalAndFractionRows(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, `Date,Site,Kst,Employee,Activity,Start,End,Fraction,Result,Notes
2024-06-03,A,100,Anna,Aufmaß,08:00,12:00,,Profile aufgenommen,
2024-06-03,A,100,Anna,Absteckung,,,"0,25",Achsen abgesteckt,windig
`)

	result, err := Run(path, testConfig())
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if result.RowsRead != 2 || result.RowsMapped != 2 || result.RowsSkipped != 0 {
		t.Fatalf("unexpected counters: %+v", result)
	}

	interval := result.Entries[0]
	if interval.Mode() != logentry.ModeInterval {
		t.Fatalf("expected interval mode: %+v", interval)
	}
	if interval.DayFraction != 0.50 {
		t.Fatalf("expected recomputed fraction 0.50, got %v", interval.DayFraction)
	}
	if interval.DurationHours == nil || *interval.DurationHours != 4.0 {
		t.Fatalf("expected 4.0 duration hours, got %v", interval.DurationHours)
	}

	direct := result.Entries[1]
	if direct.Mode() != logentry.ModeFraction {
		t.Fatalf("expected fraction mode: %+v", direct)
	}
	if direct.DayFraction != 0.25 {
		t.Fatalf("expected fraction 0.25, got %v", direct.DayFraction)
	}
	if direct.Notes != "windig" {
		t.Fatalf("unexpected notes: %q", direct.Notes)
	}
}

func TestRun_AcceptsGermanHeadersAndDates(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, `Datum,Baustelle,Kst,Mitarbeiter,Tätigkeit,Tagesanteil,Ergebnis
03.06.2024,B12 Umgehung,200,Benedikt,Bestandsplan,"0,5",Plan ergänzt
`)

	result, err := Run(path, testConfig())
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if result.RowsMapped != 1 {
		t.Fatalf("expected 1 mapped row, got %d", result.RowsMapped)
	}

	entry := result.Entries[0]
	if timeutil.FormatDate(entry.Date) != "2024-06-03" {
		t.Fatalf("unexpected date: %v", entry.Date)
	}
	if entry.SiteName != "B12 Umgehung" || entry.Kst != "200" || entry.Employee != "Benedikt" {
		t.Fatalf("unexpected fields: %+v", entry)
	}
	if entry.DayFraction != 0.5 {
		t.Fatalf("unexpected fraction: %v", entry.DayFraction)
	}
}

func TestRun_SkipsRowsWithoutDate(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, `Date,Site,Kst,Employee,Activity,Fraction,Result
2024-06-03,A,100,Anna,Aufmaß,0.25,ok
,,,,,,
`)

	result, err := Run(path, testConfig())
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if result.RowsMapped != 1 || result.RowsSkipped != 1 {
		t.Fatalf("unexpected counters: %+v", result)
	}
}

func TestRun_FailsOnInvalidFraction(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, `Date,Site,Kst,Employee,Activity,Fraction,Result
2024-06-03,A,100,Anna,Aufmaß,1.5,ok
`)

	_, err := Run(path, testConfig())
	if !errors.Is(err, fraction.ErrFractionOutOfRange) {
		t.Fatalf("expected ErrFractionOutOfRange, got %v", err)
	}
}

func TestRun_RoundTripsRawExport(t *testing.T) {
	t.Parallel()

	start, _ := timeutil.ParseClock("08:00")
	end, _ := timeutil.ParseClock("12:00")
	duration := 4.0
	day, err := timeutil.ParseDate("2024-06-03")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}

	entries := []logentry.Entry{
		{
			Date:          day,
			Employee:      "Anna",
			SiteName:      "A",
			Kst:           "100",
			Activity:      "Aufmaß",
			StartTime:     &start,
			EndTime:       &end,
			DayFraction:   0.50,
			DurationHours: &duration,
			Result:        "ok",
		},
		{
			Date:        day,
			Employee:    "Anna",
			SiteName:    "A",
			Kst:         "100",
			Activity:    "Sonstiges",
			DayFraction: 0.25,
			Result:      "Büro",
		},
	}

	path := filepath.Join(t.TempDir(), "raw.csv")
	if err := output.WriteRawEntries(path, "csv", entries); err != nil {
		t.Fatalf("write raw entries: %v", err)
	}

	result, err := Run(path, testConfig())
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if result.RowsMapped != 2 {
		t.Fatalf("expected 2 mapped rows, got %d", result.RowsMapped)
	}
	if result.Entries[0].DayFraction != 0.50 || result.Entries[1].DayFraction != 0.25 {
		t.Fatalf("fractions did not round-trip: %+v", result.Entries)
	}
}
