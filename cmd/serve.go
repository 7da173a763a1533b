package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"car-dashboard/server"
	"car-dashboard/services"
)

var flagHTTPAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive filter/aggregation dashboard over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "listen address (overrides HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if flagHTTPAddr != "" {
		cfg.HTTPAddr = flagHTTPAddr
	}

	store := server.NewStore(cfg.CSVPath, services.NewCleaner(logger), logger)
	if err := store.Reload(); err != nil {
		return fmt.Errorf("serve: initial load: %w", err)
	}
	defer store.Close()

	if err := store.Watch(); err != nil {
		logger.Warn("[serve] File watching unavailable, dataset will not auto-reload: %v", err)
	}

	srv := server.New(store, services.NewInsightService(logger), logger)
	logger.Info("[serve] Dashboard listening on %s — source: %s", cfg.HTTPAddr, cfg.CSVPath)
	return srv.ListenAndServe(cfg.HTTPAddr)
}
