package report

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"sitelog/internal/timeutil"
	"sitelog/logentry"
	"sitelog/storage"
)

func entryOn(t *testing.T, date, site, kst string, fraction float64) logentry.Entry {
	t.Helper()

	day, err := timeutil.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	return logentry.Entry{
		Date:        day,
		Employee:    "Anna",
		SiteName:    site,
		Kst:         kst,
		Activity:    "Aufmaß",
		DayFraction: fraction,
		Result:      "ok",
	}
}

func TestBuildDailyRows_GroupsByDateSiteAndKst(t *testing.T) {
	t.Parallel()

	entries := []logentry.Entry{
		entryOn(t, "2024-06-03", "A", "100", 0.50),
		entryOn(t, "2024-06-03", "A", "100", 0.25),
		entryOn(t, "2024-06-03", "B", "200", 0.25),
		entryOn(t, "2024-06-04", "A", "100", 0.10),
	}

	rows := BuildDailyRows(entries)
	if len(rows) != 3 {
		t.Fatalf("expected 3 daily rows, got %d", len(rows))
	}

	first := rows[0]
	if timeutil.FormatDate(first.Date) != "2024-06-03" || first.SiteName != "A" || first.Kst != "100" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.FractionSum != 0.75 {
		t.Fatalf("expected sum 0.75, got %v", first.FractionSum)
	}
	if rows[1].SiteName != "B" || rows[1].FractionSum != 0.25 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if timeutil.FormatDate(rows[2].Date) != "2024-06-04" || rows[2].FractionSum != 0.10 {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}
}

func TestBuildMonthlyRows_SortedBySiteThenKst(t *testing.T) {
	t.Parallel()

	entries := []logentry.Entry{
		entryOn(t, "2024-06-10", "B", "200", 0.25),
		entryOn(t, "2024-06-03", "A", "200", 0.50),
		entryOn(t, "2024-06-04", "A", "100", 0.25),
		entryOn(t, "2024-06-05", "A", "100", 0.25),
	}

	rows := BuildMonthlyRows(entries)
	if len(rows) != 3 {
		t.Fatalf("expected 3 monthly rows, got %d", len(rows))
	}
	if rows[0].SiteName != "A" || rows[0].Kst != "100" || rows[0].FractionSum != 0.50 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].SiteName != "A" || rows[1].Kst != "200" || rows[1].FractionSum != 0.50 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if rows[2].SiteName != "B" || rows[2].Kst != "200" || rows[2].FractionSum != 0.25 {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}
}

// Many 0.05 fractions are the worst case for float summation drift; the
// integer accumulation keeps daily and monthly sums bit-identical.
func TestMonthlyTotalsReconcileWithDailyRows(t *testing.T) {
	t.Parallel()

	entries := make([]logentry.Entry, 0, 60)
	for day := 1; day <= 20; day++ {
		date := time.Date(2024, time.June, day, 0, 0, 0, 0, time.Local)
		for _, fraction := range []float64{0.05, 0.15, 0.30} {
			entries = append(entries, entryOn(t, timeutil.FormatDate(date), "A", "100", fraction))
		}
	}

	daily := BuildDailyRows(entries)
	monthly := BuildMonthlyRows(entries)

	var dailySum float64
	for _, row := range daily {
		dailySum += row.FractionSum
	}
	if len(monthly) != 1 {
		t.Fatalf("expected 1 monthly row, got %d", len(monthly))
	}
	if math.Abs(monthly[0].FractionSum-10.0) > 1e-9 {
		t.Fatalf("expected monthly total 10.0, got %v", monthly[0].FractionSum)
	}
	if math.Abs(dailySum-monthly[0].FractionSum) > 1e-9 {
		t.Fatalf("daily sum %v does not reconcile with monthly total %v", dailySum, monthly[0].FractionSum)
	}
}

func TestAggregator_ScenarioTwoEntriesSameSiteAndKst(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "report_test.db")
	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	for _, fraction := range []float64{0.50, 0.25} {
		if _, err := store.CreateEntry(entryOn(t, "2024-06-03", "A", "100", fraction)); err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	aggregator := NewAggregator(store)

	daily, err := aggregator.DailySummary(2024, time.June)
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}
	if len(daily) != 1 {
		t.Fatalf("expected 1 daily row, got %d", len(daily))
	}
	row := daily[0]
	if timeutil.FormatDate(row.Date) != "2024-06-03" || row.SiteName != "A" || row.Kst != "100" || row.FractionSum != 0.75 {
		t.Fatalf("unexpected daily row: %+v", row)
	}

	monthly, err := aggregator.MonthlyTotals(2024, time.June)
	if err != nil {
		t.Fatalf("monthly totals: %v", err)
	}
	if len(monthly) != 1 {
		t.Fatalf("expected 1 monthly row, got %d", len(monthly))
	}
	if monthly[0].SiteName != "A" || monthly[0].Kst != "100" || monthly[0].FractionSum != 0.75 {
		t.Fatalf("unexpected monthly row: %+v", monthly[0])
	}
}

func TestBuildRows_EmptyInput(t *testing.T) {
	t.Parallel()

	if rows := BuildDailyRows(nil); len(rows) != 0 {
		t.Fatalf("expected no daily rows, got %d", len(rows))
	}
	if rows := BuildMonthlyRows(nil); len(rows) != 0 {
		t.Fatalf("expected no monthly rows, got %d", len(rows))
	}
}
