package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"car-dashboard/models"
	"car-dashboard/services"
	"car-dashboard/storage"
	"car-dashboard/utils"
)

var flagExportPath string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Clean the listings CSV and bulk-load it into the destination table",
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&flagExportPath, "export", "", "also write the cleaned dataset to this CSV path (overrides EXPORT_PATH)")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	logger.Info("=== Car dataset load starting ===")
	logger.Info("Config — source: %s | driver: %s | table: %s",
		cfg.CSVPath, cfg.StorageDriver, cfg.TableName)

	header, rows, err := storage.ReadCSV(cfg.CSVPath)
	if err != nil {
		return err
	}

	cleaner := services.NewCleaner(logger)
	cars := cleaner.Clean(header, rows)
	if len(cars) == 0 {
		return fmt.Errorf("load: all %d rows were dropped during cleaning", len(rows))
	}

	exportPath := flagExportPath
	if exportPath == "" {
		exportPath = cfg.ExportPath
	}
	if exportPath != "" {
		if err := exportCleaned(cars, exportPath); err != nil {
			logger.Error("Cleaned CSV export failed: %v", err)
		} else {
			logger.Info("Cleaned dataset exported to %s", exportPath)
		}
	}

	writer, err := newCarWriter()
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.Write(cars); err != nil {
		return err
	}
	logger.Info("Stored %d cars in the %s table (%s)", len(cars), cfg.TableName, cfg.StorageDriver)

	stored, err := writer.FetchAll()
	if err != nil {
		logger.Error("Failed to read the table back for insights: %v", err)
		stored = cars
	}
	// Brand is derived, not stored.
	for _, car := range stored {
		car.Brand = services.ExtractBrand(car.Title)
	}

	insights := services.NewInsightService(logger)
	insights.Print(insights.Render(stored, services.FilterOptions{}))

	return nil
}

func exportCleaned(cars []*models.Car, path string) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteCars(cars); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// newCarWriter picks the destination backend. Postgres connects with
// backoff; SQLite is a local file and either opens or it doesn't.
func newCarWriter() (storage.CarWriter, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		return storage.NewSQLiteWriter(cfg.SQLitePath, cfg.TableName)
	case "postgres":
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		}
		return storage.NewPostgresWriter(cfg.DSN(), cfg.TableName, retry)
	default:
		return nil, fmt.Errorf("load: unknown storage driver %q", cfg.StorageDriver)
	}
}
