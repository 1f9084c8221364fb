package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sitelog/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  sitelog config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		}
		fmt.Println("Configuration:")
		fmt.Printf("workday.hours: %g\n", cfg.Workday.Hours)
		fmt.Printf("workday.rounding_step: %g\n", cfg.Workday.RoundingStep)
		fmt.Printf("report.prefix: %s\n", cfg.Report.Prefix)
		fmt.Printf("employees: %s\n", strings.Join(cfg.Employees, ", "))
		fmt.Printf("activities: %s\n", strings.Join(cfg.Activities, ", "))

		if storageDir, err := config.ResolveStorageDir(); err == nil {
			fmt.Printf("storage directory: %s\n", storageDir)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
