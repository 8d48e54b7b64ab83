package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/miikama/game-lobby-REST-backend/internal/api"
	"github.com/miikama/game-lobby-REST-backend/internal/config"
	"github.com/miikama/game-lobby-REST-backend/internal/factory"
	"github.com/miikama/game-lobby-REST-backend/internal/seed"
)

// builtinSeed selects the embedded demo data when --seed has no value
const builtinSeed = "builtin"

const hubCleanupInterval = time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile, seedFile string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Game lobby REST server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configFile, seedFile)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Config file (default: config.yaml in . or ./config)")
	cmd.Flags().StringVar(&seedFile, "seed", "", "Load demo data on start; optionally a YAML seed file")
	cmd.Flags().Lookup("seed").NoOptDefVal = builtinSeed

	return cmd
}

func run(ctx context.Context, configFile, seedFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	app, err := factory.New(factory.ConfigFrom(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close failed", slog.String("error", err.Error()))
		}
	}()

	if seedFile != "" {
		if err := loadSeed(ctx, app, seedFile, logger); err != nil {
			logger.Error("failed to seed", slog.String("error", err.Error()))
			return err
		}
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Coordinator: app.Coordinator,
		HubManager:  app.HubManager,
	})

	server := api.NewServer(router, cfg, logger)
	// Event streams only end when their hub closes
	server.OnShutdown(app.HubManager.Close)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.HubManager.RunCleanup(ctx, hubCleanupInterval)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}

func loadSeed(ctx context.Context, app *factory.App, seedFile string, logger *slog.Logger) error {
	var (
		data *seed.File
		err  error
	)
	if seedFile == builtinSeed {
		data, err = seed.Default()
	} else {
		data, err = seed.LoadFile(seedFile)
	}
	if err != nil {
		return err
	}

	if _, err := seed.Apply(ctx, app.Coordinator, data, logger); err != nil {
		return fmt.Errorf("apply seed data: %w", err)
	}
	return nil
}
