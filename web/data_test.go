package web

import (
	"testing"
	"time"

	"sitelog/logentry"
)

func TestBuildDayView_SumsFractionsExactly(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	entries := make([]logentry.Entry, 0, 20)
	for i := 0; i < 20; i++ {
		entries = append(entries, fractionEntry(day, "A", 0.05))
	}

	view := BuildDayView(day, entries)
	if view.FractionSum != 1.0 {
		t.Fatalf("expected exact sum 1.0, got %v", view.FractionSum)
	}
	if view.Date != "2026-03-10" {
		t.Fatalf("unexpected date label: %q", view.Date)
	}
}

func TestBuildMonthView_FillsEveryCalendarDay(t *testing.T) {
	t.Parallel()

	monthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)
	entries := []logentry.Entry{
		fractionEntry(time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local), "A", 0.50),
		fractionEntry(time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local), "B", 0.25),
	}

	summary := BuildMonthView(monthStart, entries)
	if len(summary.Days) != 28 {
		t.Fatalf("expected 28 day rows for 2026-02, got %d", len(summary.Days))
	}
	if summary.TotalFraction != 0.75 {
		t.Fatalf("expected total 0.75, got %v", summary.TotalFraction)
	}

	worked := summary.Days[9]
	if worked.EntryCount != 2 || worked.FractionSum != 0.75 {
		t.Fatalf("unexpected worked day row: %+v", worked)
	}
	if summary.Days[0].EntryCount != 0 {
		t.Fatalf("expected empty first day, got %+v", summary.Days[0])
	}
	if len(summary.Totals) != 2 {
		t.Fatalf("expected 2 monthly total rows, got %d", len(summary.Totals))
	}
}
