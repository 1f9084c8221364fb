package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitelog/config"
	"sitelog/importer"
)

var (
	importInput  string
	importDBPath string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import entries from a CSV file into the local database",
	Long: `Read a CSV file, map each row to an entry, and persist the results.

The reader accepts both the English raw-export headers and their German
equivalents (Datum, Baustelle, Mitarbeiter, Tätigkeit, Tagesanteil, ...).
Interval rows get their day fraction recomputed from the configured workday;
direct-fraction rows are validated as-is. Rows without a date cell are
skipped, any other malformed row aborts the import with its row number.`,
	Example: `
  # Re-import a raw export
  sitelog import -i ./march.csv

  # Import into an explicit database file
  sitelog import -i ./march.csv --db ./sitelog.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		result, err := importer.Run(importInput, *cfg)
		if err != nil {
			return err
		}

		store, err := openStore(importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		persisted := 0
		for _, entry := range result.Entries {
			if _, err := store.CreateEntry(entry); err != nil {
				return fmt.Errorf("persist imported entry (%s %s): %w", entry.Date.Format("2006-01-02"), entry.SiteName, err)
			}
			persisted++
		}

		fmt.Printf("Import completed. Rows read: %d, Rows mapped: %d, Rows skipped: %d, Rows persisted: %d\n",
			result.RowsRead,
			result.RowsMapped,
			result.RowsSkipped,
			persisted,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importInput, "input", "i", "", "Input CSV file path")
	importCmd.Flags().StringVar(&importDBPath, "db", "", "Path to local SQLite database (default: storage directory)")

	_ = importCmd.MarkFlagRequired("input")
}
