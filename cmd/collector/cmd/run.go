// Package cmd implements CLI commands for the RabbitMQ collector.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rabbitmq-collector/internal/client/management"
	"rabbitmq-collector/internal/config"
	"rabbitmq-collector/internal/model"
	"rabbitmq-collector/internal/service"
	"rabbitmq-collector/internal/sink"
)

// Command flags
var (
	runOnce    bool   // Run a single cycle and exit
	outputType string // Overrides output.type
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll the management API and emit samples",
	Long: `Poll the RabbitMQ management API every collector.interval and emit one
sample per known node, queue and exchange statistic:

1. /nodes: node resource usage (fd, sockets, memory, disk, processes)
2. /vhosts, then per vhost:
   - /queues/{vhost} and /queues/{vhost}/{queue}: sizes, rates, message_stats
   - /exchanges/{vhost}/{exchange}: message_stats

A failed request drops only the entities that depend on it. The loop keeps
running until SIGINT or SIGTERM.

Examples:
  # Poll forever, writing tcollector lines to stdout
  rabbitmq-collector run -c collector.yaml

  # Single cycle, useful for debugging a broker
  rabbitmq-collector run -c collector.yaml --once --log-level debug

  # Push to OpenTSDB instead of stdout
  rabbitmq-collector run -c collector.yaml --output opentsdb`,
	Run: runCollector,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runOnce, "once", false, "run a single collection cycle and exit")
	runCmd.Flags().StringVarP(&outputType, "output", "o", "", "output type (stdout, opentsdb), overrides output.type")
}

// runCollector loads configuration, wires the collector and runs the poll loop.
func runCollector(cmd *cobra.Command, args []string) {
	configPath := GetConfigFile()
	cfg, err := config.Load(configPath)
	if err != nil {
		tmpLogger := setupLogger("error", "console")
		tmpLogger.Error().Err(err).Str("path", configPath).Msg("failed to load config")
		os.Exit(1)
	}

	level := resolveLogLevel(cfg)
	logger := setupLogger(level, cfg.Logging.Format)
	logger.Debug().
		Str("config_path", configPath).
		Str("log_level", level).
		Str("log_format", cfg.Logging.Format).
		Msg("configuration loaded successfully")

	poller, err := buildPoller(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize collector")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("version", Version).
		Str("endpoint", cfg.RabbitMQ.BaseURL()).
		Str("output", resolveOutputType(cfg)).
		Int("concurrency", cfg.Collector.Concurrency).
		Msg("starting RabbitMQ collector")

	if runOnce {
		if _, err := poller.RunOnce(ctx); err != nil {
			logger.Error().Err(err).Msg("collection cycle failed")
			os.Exit(1)
		}
		return
	}

	if err := poller.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("poll loop failed")
		os.Exit(1)
	}
}

// buildPoller wires the management client, the sink and the extractor.
func buildPoller(cfg *config.Config, logger zerolog.Logger) (*service.Poller, error) {
	client := management.NewClient(&cfg.RabbitMQ, &cfg.HTTP.Retry, logger)

	registry := sink.NewRegistry(cfg, os.Stdout, logger)
	out, err := registry.Get(resolveOutputType(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create sink: %w", err)
	}

	extractor := service.NewExtractor(client, out, service.ExtractorOptions{
		Prefix:      cfg.Collector.Prefix,
		Namer:       model.NewVHostNamer(cfg.Collector.VHostNaming, cfg.Collector.RootVHostPlaceholder),
		Concurrency: cfg.Collector.Concurrency,
	}, logger)

	return service.NewPoller(extractor, out, cfg.Collector.Interval, logger), nil
}

// resolveLogLevel returns the log level to use.
// Command line flag takes precedence over config file.
func resolveLogLevel(cfg *config.Config) string {
	if GetLogLevel() != "" {
		return GetLogLevel()
	}
	return cfg.Logging.Level
}

// resolveOutputType returns the output type to use.
// Command line flag takes precedence over config file.
func resolveOutputType(cfg *config.Config) string {
	if outputType != "" {
		return outputType
	}
	return cfg.Output.Type
}
