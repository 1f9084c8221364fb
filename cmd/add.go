package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sitelog/config"
	"sitelog/fraction"
	"sitelog/internal/timeutil"
	"sitelog/logentry"
)

var (
	addDate     string
	addEmployee string
	addSite     string
	addKst      string
	addActivity string
	addStart    string
	addEnd      string
	addFraction float64
	addResult   string
	addNotes    string
	addFromLast bool
	addDBPath   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new daily activity entry",
	Long: `Record one activity entry for a day.

An entry is captured in one of two modes:
- interval: give --start and --end, the day fraction is computed from the
  configured workday length and rounded to the configured step
- fraction: give --fraction directly, without clock times

With --from-last the employee, site, Kst, and activity are prefilled from the
most recently created entry; explicit flags still win.`,
	Example: `
  # Interval entry, fraction computed as (end-start)/workday hours
  sitelog add --date 2026-03-02 --employee Anna --site "B12 Umgehung" --kst 4711 \
    --activity "Aufmaß" --start 08:00 --end 12:00 --result "Profile aufgenommen"

  # Direct fraction entry for today
  sitelog add --employee Anna --site Büro --kst 100 --activity Sonstiges \
    --fraction 0.25 --result "Abrechnung vorbereitet"

  # Next entry on the same site, only the changing fields given
  sitelog add --from-last --start 13:00 --end 17:00 --result "Absteckung Achse 3"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := openStore(addDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if addFromLast {
			last, found, lastErr := store.LatestEntry()
			if lastErr != nil {
				return lastErr
			}
			if found {
				if addEmployee == "" {
					addEmployee = last.Employee
				}
				if addSite == "" {
					addSite = last.SiteName
				}
				if addKst == "" {
					addKst = last.Kst
				}
				if addActivity == "" {
					addActivity = last.Activity
				}
			}
		}

		entry, err := buildEntryFromFlags(cmd, *cfg)
		if err != nil {
			return err
		}

		id, err := store.CreateEntry(entry)
		if err != nil {
			return err
		}

		fmt.Printf("Entry %d recorded: %s %s (%s), fraction %.2f\n",
			id, timeutil.FormatDate(entry.Date), entry.SiteName, entry.Activity, entry.DayFraction)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDate, "date", "", "Entry date YYYY-MM-DD (default: today)")
	addCmd.Flags().StringVar(&addEmployee, "employee", "", "Employee name")
	addCmd.Flags().StringVar(&addSite, "site", "", "Construction site name")
	addCmd.Flags().StringVar(&addKst, "kst", "", "Cost center (Kst)")
	addCmd.Flags().StringVar(&addActivity, "activity", "", "Activity description")
	addCmd.Flags().StringVar(&addStart, "start", "", "Start time HH:MM (interval mode)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "End time HH:MM (interval mode)")
	addCmd.Flags().Float64Var(&addFraction, "fraction", 0, "Day fraction in (0, 1] (fraction mode)")
	addCmd.Flags().StringVar(&addResult, "result", "", "What was achieved")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-form notes")
	addCmd.Flags().BoolVar(&addFromLast, "from-last", false, "Prefill employee/site/kst/activity from the latest entry")
	addCmd.Flags().StringVar(&addDBPath, "db", "", "Path to local SQLite database (default: storage directory)")
}

func buildEntryFromFlags(cmd *cobra.Command, cfg config.Config) (logentry.Entry, error) {
	day := timeutil.StartOfDay(time.Now())
	if strings.TrimSpace(addDate) != "" {
		parsed, err := timeutil.ParseDate(addDate)
		if err != nil {
			return logentry.Entry{}, fmt.Errorf("invalid --date value %q (expected YYYY-MM-DD)", addDate)
		}
		day = parsed
	}

	entry := logentry.Entry{
		Date:     day,
		Employee: strings.TrimSpace(addEmployee),
		SiteName: strings.TrimSpace(addSite),
		Kst:      strings.TrimSpace(addKst),
		Activity: strings.TrimSpace(addActivity),
		Result:   strings.TrimSpace(addResult),
		Notes:    strings.TrimSpace(addNotes),
	}

	startRaw := strings.TrimSpace(addStart)
	endRaw := strings.TrimSpace(addEnd)
	switch {
	case startRaw != "" && endRaw != "":
		start, err := timeutil.ParseClock(startRaw)
		if err != nil {
			return logentry.Entry{}, fmt.Errorf("invalid --start value %q (expected HH:MM)", addStart)
		}
		end, err := timeutil.ParseClock(endRaw)
		if err != nil {
			return logentry.Entry{}, fmt.Errorf("invalid --end value %q (expected HH:MM)", addEnd)
		}
		computed, err := fraction.Compute(start, end, cfg.Workday.Hours, cfg.Workday.RoundingStep)
		if err != nil {
			return logentry.Entry{}, err
		}
		entry.StartTime = &start
		entry.EndTime = &end
		entry.DayFraction = computed.Fraction
		entry.DurationHours = &computed.DurationHours
	case startRaw == "" && endRaw == "":
		if !cmd.Flags().Changed("fraction") {
			return logentry.Entry{}, fmt.Errorf("either --start/--end or --fraction must be given")
		}
		validated, err := fraction.ValidateDirect(addFraction, cfg.Workday.Hours)
		if err != nil {
			return logentry.Entry{}, err
		}
		entry.DayFraction = validated.Fraction
	default:
		return logentry.Entry{}, fmt.Errorf("--start and --end must be given together")
	}

	return entry, nil
}
