package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sitelog/internal/timeutil"
)

var (
	duplicateID     int64
	duplicateDate   string
	duplicateDBPath string
)

var duplicateCmd = &cobra.Command{
	Use:   "duplicate",
	Short: "Copy an existing entry onto another date",
	Long: `Create a copy of an entry. The copy keeps all activity fields and gets a
fresh id and timestamps. Without --date the copy lands on the source date.`,
	Example: `
  # Same work again on the next day
  sitelog duplicate --id 12 --date 2026-03-03

  # Second identical entry on the same day
  sitelog duplicate --id 12
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(duplicateDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		date := time.Time{}
		if strings.TrimSpace(duplicateDate) != "" {
			date, err = timeutil.ParseDate(duplicateDate)
			if err != nil {
				return fmt.Errorf("invalid --date value %q (expected YYYY-MM-DD)", duplicateDate)
			}
		}

		newID, err := store.DuplicateEntry(duplicateID, date)
		if err != nil {
			return err
		}

		fmt.Printf("Entry %d duplicated as %d\n", duplicateID, newID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(duplicateCmd)

	duplicateCmd.Flags().Int64Var(&duplicateID, "id", 0, "Entry id to duplicate")
	duplicateCmd.Flags().StringVar(&duplicateDate, "date", "", "Target date YYYY-MM-DD (default: source date)")
	duplicateCmd.Flags().StringVar(&duplicateDBPath, "db", "", "Path to local SQLite database (default: storage directory)")

	_ = duplicateCmd.MarkFlagRequired("id")
}
