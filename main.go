package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/omni-data/gridline/clients/postgres"
	"github.com/omni-data/gridline/clients/snowflake"
	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/config/constants"
	"github.com/omni-data/gridline/lib/destination"
	"github.com/omni-data/gridline/lib/logger"
	"github.com/omni-data/gridline/lib/telemetry/metrics"
	"github.com/omni-data/gridline/processes/web"
)

func main() {
	settings, err := config.LoadSettings(os.Args, true)
	if err != nil {
		logger.Fatal("Failed to load settings", slog.Any("err", err))
	}

	_logger, cleanUpHandlers := logger.NewLogger(settings.VerboseLogging, settings.Config.Reporting.Sentry)
	defer cleanUpHandlers()
	slog.SetDefault(_logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsClient := metrics.LoadExporter(settings.Config)

	var warehouse destination.Warehouse
	switch settings.Config.Output {
	case constants.Snowflake:
		store, err := snowflake.LoadStore(settings.Config, nil)
		if err != nil {
			logger.Fatal("Failed to load the snowflake store", slog.Any("err", err))
		}

		warehouse = store
	case constants.Postgres:
		store, err := postgres.LoadStore(ctx, settings.Config, nil)
		if err != nil {
			logger.Fatal("Failed to load the postgres store", slog.Any("err", err))
		}

		warehouse = store
	default:
		logger.Fatal("Unsupported destination", slog.Any("output", settings.Config.Output))
	}

	slog.Info("Config is loaded",
		slog.Any("output", settings.Config.Output),
		slog.Int("numTables", len(settings.Config.Tables)),
		slog.String("bindAddress", settings.Config.Web.BindAddress),
	)

	// Staging tables from crashed runs expire on their own, sweep them out on boot.
	if err = warehouse.SweepStagingTables(ctx); err != nil {
		slog.Warn("Failed to sweep expired staging tables", slog.Any("err", err))
	}

	if err = web.New(settings.Config, warehouse, metricsClient).Run(ctx); err != nil {
		logger.Fatal("The web process died", slog.Any("err", err))
	}

	slog.Info("Gridline is shutting down...")
}
