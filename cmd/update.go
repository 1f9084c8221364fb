package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sitelog/config"
	"sitelog/fraction"
	"sitelog/internal/timeutil"
)

var (
	updateID       int64
	updateDate     string
	updateEmployee string
	updateSite     string
	updateKst      string
	updateActivity string
	updateStart    string
	updateEnd      string
	updateFraction float64
	updateResult   string
	updateNotes    string
	updateDBPath   string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update fields of an existing entry",
	Long: `Update an entry in place. Only the flags that are set change; everything
else keeps its stored value.

Changing --start/--end recomputes the day fraction from the configured workday
length. Setting --fraction switches the entry to direct-fraction mode and
clears the clock times.`,
	Example: `
  # Fix the result text
  sitelog update --id 12 --result "Absteckung Achse 3 fertig"

  # Extend the interval; the fraction is recomputed
  sitelog update --id 12 --end 17:30

  # Switch to a direct fraction
  sitelog update --id 12 --fraction 0.5
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := openStore(updateDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entry, found, err := store.GetEntry(updateID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("entry %d not found", updateID)
		}

		flags := cmd.Flags()
		if flags.Changed("date") {
			parsed, err := timeutil.ParseDate(updateDate)
			if err != nil {
				return fmt.Errorf("invalid --date value %q (expected YYYY-MM-DD)", updateDate)
			}
			entry.Date = parsed
		}
		if flags.Changed("employee") {
			entry.Employee = strings.TrimSpace(updateEmployee)
		}
		if flags.Changed("site") {
			entry.SiteName = strings.TrimSpace(updateSite)
		}
		if flags.Changed("kst") {
			entry.Kst = strings.TrimSpace(updateKst)
		}
		if flags.Changed("activity") {
			entry.Activity = strings.TrimSpace(updateActivity)
		}
		if flags.Changed("result") {
			entry.Result = strings.TrimSpace(updateResult)
		}
		if flags.Changed("notes") {
			entry.Notes = strings.TrimSpace(updateNotes)
		}

		timesChanged := flags.Changed("start") || flags.Changed("end")
		if timesChanged && flags.Changed("fraction") {
			return fmt.Errorf("--start/--end and --fraction are mutually exclusive")
		}

		switch {
		case timesChanged:
			if flags.Changed("start") {
				start, err := timeutil.ParseClock(updateStart)
				if err != nil {
					return fmt.Errorf("invalid --start value %q (expected HH:MM)", updateStart)
				}
				entry.StartTime = &start
			}
			if flags.Changed("end") {
				end, err := timeutil.ParseClock(updateEnd)
				if err != nil {
					return fmt.Errorf("invalid --end value %q (expected HH:MM)", updateEnd)
				}
				entry.EndTime = &end
			}
			if entry.StartTime == nil || entry.EndTime == nil {
				return fmt.Errorf("entry %d has no stored interval; give both --start and --end", updateID)
			}
			computed, err := fraction.Compute(*entry.StartTime, *entry.EndTime, cfg.Workday.Hours, cfg.Workday.RoundingStep)
			if err != nil {
				return err
			}
			entry.DayFraction = computed.Fraction
			entry.DurationHours = &computed.DurationHours
		case flags.Changed("fraction"):
			validated, err := fraction.ValidateDirect(updateFraction, cfg.Workday.Hours)
			if err != nil {
				return err
			}
			entry.StartTime = nil
			entry.EndTime = nil
			entry.DurationHours = nil
			entry.DayFraction = validated.Fraction
		}

		if err := store.UpdateEntry(entry); err != nil {
			return err
		}

		fmt.Printf("Entry %d updated: %s %s, fraction %.2f\n",
			entry.ID, timeutil.FormatDate(entry.Date), entry.SiteName, entry.DayFraction)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().Int64Var(&updateID, "id", 0, "Entry id to update")
	updateCmd.Flags().StringVar(&updateDate, "date", "", "New entry date YYYY-MM-DD")
	updateCmd.Flags().StringVar(&updateEmployee, "employee", "", "New employee name")
	updateCmd.Flags().StringVar(&updateSite, "site", "", "New construction site name")
	updateCmd.Flags().StringVar(&updateKst, "kst", "", "New cost center (Kst)")
	updateCmd.Flags().StringVar(&updateActivity, "activity", "", "New activity description")
	updateCmd.Flags().StringVar(&updateStart, "start", "", "New start time HH:MM")
	updateCmd.Flags().StringVar(&updateEnd, "end", "", "New end time HH:MM")
	updateCmd.Flags().Float64Var(&updateFraction, "fraction", 0, "New direct day fraction in (0, 1]")
	updateCmd.Flags().StringVar(&updateResult, "result", "", "New result text")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "New notes")
	updateCmd.Flags().StringVar(&updateDBPath, "db", "", "Path to local SQLite database (default: storage directory)")

	_ = updateCmd.MarkFlagRequired("id")
}
