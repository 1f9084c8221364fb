package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sitelog/internal/timeutil"
)

func init() {
	registerEngine("excel", func() Writer { return &ExcelWriter{} })
}

// ExcelWriter writes the report as a workbook with one sheet per section.
type ExcelWriter struct{}

const (
	sheetEntries = "Entries"
	sheetDaily   = "Daily Totals"
	sheetMonthly = "Monthly Totals"
)

func (w *ExcelWriter) Write(path string, rep Report) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), sheetEntries); err != nil {
		return fmt.Errorf("rename entries sheet: %w", err)
	}
	for _, sheet := range []string{sheetDaily, sheetMonthly} {
		if _, err := file.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}

	entryRows := [][]any{
		{"Date", "Site", "Kst", "Employee", "Activity", "Start", "End", "DurationHours", "Fraction", "Result", "Notes"},
	}
	for _, entry := range rep.Entries {
		entryRows = append(entryRows, []any{
			timeutil.FormatDate(entry.Date),
			entry.SiteName,
			entry.Kst,
			entry.Employee,
			entry.Activity,
			entryClock(entry.StartTime),
			entryClock(entry.EndTime),
			entryDuration(entry),
			entry.DayFraction,
			entry.Result,
			entry.Notes,
		})
	}
	if err := writeSheet(file, sheetEntries, entryRows); err != nil {
		return err
	}

	dailyRows := [][]any{{"Date", "Site", "Kst", "FractionSum"}}
	for _, row := range rep.Daily {
		dailyRows = append(dailyRows, []any{
			timeutil.FormatDate(row.Date),
			row.SiteName,
			row.Kst,
			row.FractionSum,
		})
	}
	if err := writeSheet(file, sheetDaily, dailyRows); err != nil {
		return err
	}

	monthlyRows := [][]any{{"Site", "Kst", "FractionSum"}}
	for _, row := range rep.Totals {
		monthlyRows = append(monthlyRows, []any{
			row.SiteName,
			row.Kst,
			row.FractionSum,
		})
	}
	if err := writeSheet(file, sheetMonthly, monthlyRows); err != nil {
		return err
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}

func writeSheet(file *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return fmt.Errorf("cell name for %s row %d: %w", sheet, i+1, err)
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
