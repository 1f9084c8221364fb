package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sitelog/config"
	"sitelog/storage"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sitelog",
	Short: "Record, aggregate, and export daily field activity logs.",
	Long: `sitelog keeps a local SQLite log of daily field activities.

Each entry records who worked on which construction site (and cost center),
what was done, and which fraction of the working day it took. Entries are
captured either as a start/end time pair or as a direct day fraction, and can
be exported per month as a CSV or Excel report.`,
	Example: `
  # Create configuration file
  sitelog config create

  # Record an interval entry (fraction computed from the times)
  sitelog add --date 2026-03-02 --employee Anna --site "B12 Umgehung" --kst 4711 \
    --activity "Aufmaß" --start 08:00 --end 12:00 --result "Profile aufgenommen"

  # Record a direct-fraction entry
  sitelog add --employee Anna --site Büro --kst 100 --activity Sonstiges \
    --fraction 0.25 --result "Abrechnung vorbereitet"

  # List one day
  sitelog list --date 2026-03-02

  # Export the monthly report
  sitelog export --year 2026 --month 3 --format excel

  # Local web viewer
  sitelog serve
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.sitelog.yaml, then ./.sitelog.yaml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "add", "update", "import", "serve":
		return true
	}
	return false
}

// openStore resolves the database path and opens it. An empty path means the
// default location inside the storage directory.
func openStore(dbPath string) (*storage.SQLiteStore, error) {
	if dbPath == "" {
		resolved, err := config.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		dbPath = resolved
	}
	return storage.OpenSQLite(dbPath)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sitelog")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: sitelog config create")
	}
}
