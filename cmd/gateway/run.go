package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/gateway/pkg/cli"
	"mercator-hq/gateway/pkg/config"
	"mercator-hq/gateway/pkg/gemini"
	"mercator-hq/gateway/pkg/server"
	"mercator-hq/gateway/pkg/telemetry/health"
	"mercator-hq/gateway/pkg/telemetry/logging"
	"mercator-hq/gateway/pkg/telemetry/metrics"
	"mercator-hq/gateway/pkg/telemetry/tracing"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the gateway server",
	Long: `Start the gateway server.

Configuration is read from the environment (API_KEY, PORT and GATEWAY_*),
optionally layered over a YAML file given with --config. A .env file in the
working directory is loaded first unless --env-file points elsewhere.

Examples:
  # Start with environment configuration
  API_KEY=... gateway run

  # Start with a config file
  gateway run --config /etc/gateway/gateway.yaml

  # Override listen address
  gateway run --listen 127.0.0.1:8080

  # Validate config without starting server
  gateway run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyRunOverrides(cfg); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Telemetry.Logging, nil)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", "failed to create logger", err)
	}
	slog.SetDefault(logger.Logger)

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewConfigError("telemetry.tracing", "failed to initialize tracing", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	if cfg.Gemini.APIKey == "" {
		slog.Warn("no Gemini API key configured, generation requests will fail",
			"env", config.EnvAPIKey,
		)
	}
	client := gemini.New(ctx, cfg.Gemini, gemini.Options{
		Tracer:   tracer,
		Observer: collector,
		Logger:   logger.Logger,
	})

	checker := health.New(0)
	checker.Register("gemini", client.Check)

	srv, err := server.NewServer(cfg, server.Options{
		Generator: client,
		Metrics:   collector,
		Tracer:    tracer,
		Readiness: checker,
		Version:   versionInfo(),
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if cfgFile != "" {
		startConfigWatcher(ctx, cfgFile, logger)
	}

	printBanner(cmd.OutOrStdout(), cfg)

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Server stopped")
	return nil
}

// applyRunOverrides applies command line flags on top of the loaded
// configuration and validates the result again.
func applyRunOverrides(cfg *config.Config) error {
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("", "invalid command line overrides", err)
	}
	return nil
}

// startConfigWatcher reloads the log level when the config file changes.
// Other settings need a restart.
func startConfigWatcher(ctx context.Context, path string, logger *logging.Logger) {
	watcher, err := config.NewWatcher(path, logger.Logger)
	if err != nil {
		slog.Warn("config hot reload disabled", "error", err)
		return
	}

	go func() {
		err := watcher.Watch(ctx, func(newCfg *config.Config) {
			if runFlags.logLevel != "" {
				return
			}
			level := newCfg.Telemetry.Logging.Level
			if err := logger.SetLevel(level); err != nil {
				slog.Warn("ignoring reloaded log level", "level", level, "error", err)
				return
			}
			slog.Info("log level updated", "level", level)
		})
		if err != nil {
			slog.Error("config watcher stopped", "error", err)
		}
	}()
}

func printBanner(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Gemini gateway v%s\n", Version)
	if cfgFile != "" {
		fmt.Fprintf(w, "✓ Configuration loaded from %s\n", cfgFile)
	} else {
		fmt.Fprintln(w, "✓ Configuration loaded from environment")
	}
	fmt.Fprintf(w, "✓ Default model: %s\n", cfg.Gemini.DefaultModel)
	fmt.Fprintf(w, "✓ Listening on %s\n", cfg.Server.ListenAddress)
	fmt.Fprintf(w, "✓ Health endpoint: http://%s%s\n", cfg.Server.ListenAddress, server.PathHealth)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Fprintf(w, "✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Fprintln(w, "\nPress Ctrl+C to stop")
}
