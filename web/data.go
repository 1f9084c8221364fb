package web

import (
	"sort"
	"time"

	"sitelog/internal/timeutil"
	"sitelog/logentry"
	"sitelog/report"
)

type EntryView struct {
	ID            int64    `json:"id"`
	Date          string   `json:"date"`
	Employee      string   `json:"employee"`
	SiteName      string   `json:"siteName"`
	Kst           string   `json:"kst"`
	Activity      string   `json:"activity"`
	Start         string   `json:"start,omitempty"`
	End           string   `json:"end,omitempty"`
	DurationHours *float64 `json:"durationHours,omitempty"`
	DayFraction   float64  `json:"dayFraction"`
	Result        string   `json:"result"`
	Notes         string   `json:"notes,omitempty"`
	Mode          string   `json:"mode"`
}

type DayView struct {
	Date        string      `json:"date"`
	Entries     []EntryView `json:"entries"`
	FractionSum float64     `json:"fractionSum"`
}

type MonthDayRow struct {
	Date        time.Time
	FractionSum float64
	EntryCount  int
}

type MonthSummary struct {
	Days          []MonthDayRow
	Totals        []report.MonthlyRow
	TotalFraction float64
}

// BuildDayView keeps the storage order the entries arrived in; the fraction
// sum is accumulated in hundredths so a full day of step-sized entries adds
// up to exactly 1.0.
func BuildDayView(day time.Time, entries []logentry.Entry) DayView {
	view := DayView{
		Date:    timeutil.FormatDate(day),
		Entries: make([]EntryView, 0, len(entries)),
	}

	var sum int64
	for _, entry := range entries {
		view.Entries = append(view.Entries, buildEntryView(entry))
		sum += report.Hundredths(entry.DayFraction)
	}
	view.FractionSum = report.FromHundredths(sum)
	return view
}

// BuildMonthView groups a month's entries per day and fills the gaps so every
// calendar day of the month has a row, worked or not.
func BuildMonthView(monthStart time.Time, entries []logentry.Entry) MonthSummary {
	sums := make(map[string]int64)
	counts := make(map[string]int)
	for _, entry := range entries {
		key := timeutil.FormatDate(entry.Date)
		sums[key] += report.Hundredths(entry.DayFraction)
		counts[key]++
	}

	monthEnd := monthStart.AddDate(0, 1, 0)
	summary := MonthSummary{
		Days:   make([]MonthDayRow, 0, 31),
		Totals: report.BuildMonthlyRows(entries),
	}

	var total int64
	for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
		key := timeutil.FormatDate(day)
		summary.Days = append(summary.Days, MonthDayRow{
			Date:        day,
			FractionSum: report.FromHundredths(sums[key]),
			EntryCount:  counts[key],
		})
		total += sums[key]
	}
	summary.TotalFraction = report.FromHundredths(total)

	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date.Before(summary.Days[j].Date)
	})
	return summary
}

func buildEntryView(entry logentry.Entry) EntryView {
	view := EntryView{
		ID:            entry.ID,
		Date:          timeutil.FormatDate(entry.Date),
		Employee:      entry.Employee,
		SiteName:      entry.SiteName,
		Kst:           entry.Kst,
		Activity:      entry.Activity,
		DurationHours: entry.DurationHours,
		DayFraction:   entry.DayFraction,
		Result:        entry.Result,
		Notes:         entry.Notes,
		Mode:          entry.Mode().String(),
	}
	if entry.StartTime != nil {
		view.Start = entry.StartTime.String()
	}
	if entry.EndTime != nil {
		view.End = entry.EndTime.String()
	}
	return view
}
