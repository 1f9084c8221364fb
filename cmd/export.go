package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sitelog/config"
	"sitelog/output"
	"sitelog/report"
)

var (
	exportYear   int
	exportMonth  int
	exportFormat string
	exportMode   string
	exportOutput string
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one month of entries to CSV/Excel",
	Long: `Export a month from SQLite.

Modes:
- report: entry detail plus daily and monthly fraction totals per site and Kst
- raw: plain entry rows, suitable for re-import

Output format can be selected explicitly via --format or inferred from the
--output extension. Without --output, the report lands in the storage
directory under <prefix>_<year>_<month>.<ext>.`,
	Example: `
  # Monthly report to the default location
  sitelog export --year 2026 --month 3

  # Monthly report as Excel workbook
  sitelog export --year 2026 --month 3 --format excel

  # Raw rows for re-import
  sitelog export --year 2026 --month 3 --mode raw --output ./march.csv

  # Force Excel format independent of extension
  sitelog export --year 2026 --month 3 --format excel --output ./march.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := resolveExportPeriod(exportYear, exportMonth)
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		target := exportOutput
		if strings.TrimSpace(target) == "" {
			target, err = defaultExportPath(cfg.Report.Prefix, year, month, format)
			if err != nil {
				return err
			}
		}

		store, err := openStore(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.EntriesInMonth(year, month)
		if err != nil {
			return err
		}

		mode := strings.TrimSpace(strings.ToLower(exportMode))
		switch mode {
		case "", "report":
			rep := output.Report{
				PeriodLabel: output.PeriodLabel(year, month),
				Entries:     entries,
				Daily:       report.BuildDailyRows(entries),
				Totals:      report.BuildMonthlyRows(entries),
			}
			writer, writerErr := output.WriterForFormat(format)
			if writerErr != nil {
				return writerErr
			}
			if err := writer.Write(target, rep); err != nil {
				return err
			}
			fmt.Printf("Export completed. Rows: %d, Mode: report, Format: %s, File: %s\n", len(entries), format, target)
		case "raw":
			if err := output.WriteRawEntries(target, format, entries); err != nil {
				return err
			}
			fmt.Printf("Export completed. Rows: %d, Mode: raw, Format: %s, File: %s\n", len(entries), format, target)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: report, raw)", exportMode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	now := time.Now()
	exportCmd.Flags().IntVar(&exportYear, "year", now.Year(), "Report year")
	exportCmd.Flags().IntVar(&exportMonth, "month", int(now.Month()), "Report month (1-12)")
	exportCmd.Flags().StringVar(&exportMode, "mode", "report", "Export mode: report|raw")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: storage directory)")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to local SQLite database (default: storage directory)")
}

func resolveExportPeriod(year, month int) (int, time.Month, error) {
	if year < 2000 || year > 2200 {
		return 0, 0, fmt.Errorf("invalid --year value %d", year)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid --month value %d (expected 1-12)", month)
	}
	return year, time.Month(month), nil
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func defaultExportPath(prefix string, year int, month time.Month, format string) (string, error) {
	dir, err := config.ResolveStorageDir()
	if err != nil {
		return "", err
	}
	name, err := output.ReportFileName(prefix, year, month, format)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
