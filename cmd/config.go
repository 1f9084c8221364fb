package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sitelog configuration file values.",
	Long: `Create, edit, and display the sitelog configuration file.

The configuration stores the workday parameters and the suggestion lists:
- workday.hours / workday.rounding_step
- report.prefix
- employees / activities`,
	Example: `
  # Create default config in $HOME/.sitelog.yaml
  sitelog config create

  # Show active config and source file
  sitelog config show

  # Open active config in editor (creates example if missing)
  sitelog config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
