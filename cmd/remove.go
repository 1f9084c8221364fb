package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sitelog/internal/timeutil"
)

var (
	removeID     int64
	removeYes    bool
	removeDBPath string
)

var (
	removePromptInput  io.Reader = os.Stdin
	removePromptOutput io.Writer = os.Stdout
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete one entry by id",
	Long: `Delete a single entry from the database.

Before deletion, an interactive security prompt requires typing exactly "Y".
Use --yes to skip the prompt in scripts.`,
	Example: `
  # Delete entry 12 (requires interactive confirmation)
  sitelog remove --id 12

  # Delete without prompting
  sitelog remove --id 12 --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(removeDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entry, found, err := store.GetEntry(removeID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("entry %d not found", removeID)
		}

		if !removeYes {
			confirmed, err := confirmRemovePrompt(removePromptInput, removePromptOutput, entry.ID, timeutil.FormatDate(entry.Date), entry.SiteName)
			if err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("remove aborted: confirmation was not 'Y'")
			}
		}

		if err := store.DeleteEntry(removeID); err != nil {
			return err
		}
		fmt.Printf("Deleted entry %d\n", removeID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().Int64Var(&removeID, "id", 0, "Entry id to delete")
	removeCmd.Flags().BoolVar(&removeYes, "yes", false, "Skip the confirmation prompt")
	removeCmd.Flags().StringVar(&removeDBPath, "db", "", "Path to local SQLite database (default: storage directory)")

	_ = removeCmd.MarkFlagRequired("id")
}

func confirmRemovePrompt(input io.Reader, output io.Writer, id int64, date, site string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("remove confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete entry %d (%s, %s)? Type Y to confirm: ", id, date, site); err != nil {
		return false, fmt.Errorf("write remove confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read remove confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}
