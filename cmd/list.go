package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sitelog/internal/timeutil"
	"sitelog/logentry"
	"sitelog/report"
)

var (
	listDate   string
	listDBPath string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entries of one day",
	Example: `
  # List today's entries
  sitelog list

  # List a specific day
  sitelog list --date 2026-03-02
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := timeutil.StartOfDay(time.Now())
		if strings.TrimSpace(listDate) != "" {
			parsed, err := timeutil.ParseDate(listDate)
			if err != nil {
				return fmt.Errorf("invalid --date value %q (expected YYYY-MM-DD)", listDate)
			}
			day = parsed
		}

		store, err := openStore(listDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.ListByDate(day)
		if err != nil {
			return err
		}

		fmt.Printf("Entries for %s:\n", timeutil.FormatDate(day))
		if len(entries) == 0 {
			fmt.Println("  (none)")
			return nil
		}

		var sum int64
		for _, entry := range entries {
			fmt.Printf("  [%d] %s\n", entry.ID, formatEntryLine(entry))
			sum += report.Hundredths(entry.DayFraction)
		}
		fmt.Printf("Day fraction total: %.2f\n", report.FromHundredths(sum))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listDate, "date", "", "Day to list, YYYY-MM-DD (default: today)")
	listCmd.Flags().StringVar(&listDBPath, "db", "", "Path to local SQLite database (default: storage directory)")
}

func formatEntryLine(entry logentry.Entry) string {
	span := "--:-- - --:--"
	if entry.StartTime != nil && entry.EndTime != nil {
		span = entry.StartTime.String() + " - " + entry.EndTime.String()
	}
	line := fmt.Sprintf("%s | Kst %s | %s | %s | %.2f | %s",
		entry.SiteName, entry.Kst, entry.Employee, span, entry.DayFraction, entry.Activity)
	if entry.Result != "" {
		line += " | " + entry.Result
	}
	return line
}
