package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"car-dashboard/config"
	"car-dashboard/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger

	// Overrides for the most commonly changed settings.
	flagCSVPath string
	flagDriver  string
)

var rootCmd = &cobra.Command{
	Use:   "cardash",
	Short: "Load and explore a used-car listings dataset",
	Long: `cardash runs a small cleaning pipeline over a CSV of used-car listings
(column normalization, type coercion, outlier filtering, brand derivation)
and either bulk-loads the cleaned dataset into a SQL table or serves an
interactive filter/aggregation dashboard over it.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(initApp)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCSVPath, "csv", "", "path to the listings CSV (overrides CSV_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "storage driver: postgres or sqlite (overrides STORAGE_DRIVER)")
}

func initApp() {
	logger = utils.NewLogger()
	cfg = config.Load()

	if flagCSVPath != "" {
		cfg.CSVPath = flagCSVPath
	}
	if flagDriver != "" {
		cfg.StorageDriver = flagDriver
	}
}
