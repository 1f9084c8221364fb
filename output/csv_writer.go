package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"sitelog/internal/timeutil"
	"sitelog/logentry"
)

func init() {
	registerEngine("csv", func() Writer { return &CSVWriter{} })
}

// CSVWriter writes the three report sections into one delimited file: raw
// entry detail, daily sums per site and kst, monthly totals per site and kst.
type CSVWriter struct{}

func (w *CSVWriter) Write(path string, rep Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	rows := [][]string{
		{"Report", rep.PeriodLabel},
		{},
		{"Date", "Site", "Kst", "Employee", "Activity", "Fraction", "Result"},
	}
	for _, entry := range rep.Entries {
		rows = append(rows, []string{
			timeutil.FormatDate(entry.Date),
			entry.SiteName,
			entry.Kst,
			entry.Employee,
			entry.Activity,
			fmt.Sprintf("%.2f", entry.DayFraction),
			entry.Result,
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"Daily totals per site and Kst"},
		[]string{"Date", "Site", "Kst", "FractionSum"},
	)
	for _, row := range rep.Daily {
		rows = append(rows, []string{
			timeutil.FormatDate(row.Date),
			row.SiteName,
			row.Kst,
			fmt.Sprintf("%.2f", row.FractionSum),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"Monthly totals per site and Kst"},
		[]string{"Site", "Kst", "FractionSum"},
	)
	for _, row := range rep.Totals {
		rows = append(rows, []string{
			row.SiteName,
			row.Kst,
			fmt.Sprintf("%.2f", row.FractionSum),
		})
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

func entryClock(value *timeutil.Clock) string {
	if value == nil {
		return ""
	}
	return value.String()
}

func entryDuration(entry logentry.Entry) string {
	if entry.DurationHours == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *entry.DurationHours)
}
