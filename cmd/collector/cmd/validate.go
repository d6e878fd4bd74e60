// Package cmd implements CLI commands for the RabbitMQ collector.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rabbitmq-collector/internal/client/management"
	"rabbitmq-collector/internal/config"
)

const checkTimeout = 30 * time.Second

var (
	printConfig bool // Print the effective configuration
	checkAPI    bool // Check connectivity to the management API
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load and validate the configuration file and environment overrides.

  --print  print the effective configuration as YAML (password masked)
  --check  also query /api/overview to verify address and credentials`,
	Run: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&printConfig, "print", false, "print the effective configuration")
	validateCmd.Flags().BoolVar(&checkAPI, "check", false, "check connectivity to the management API")
}

// runValidate executes the validate command logic.
func runValidate(cmd *cobra.Command, args []string) {
	configPath := GetConfigFile()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		os.Exit(1)
	}

	if printConfig {
		out, err := config.Dump(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	}

	if checkAPI {
		logger := setupLogger(resolveLogLevel(cfg), cfg.Logging.Format)
		client := management.NewClient(&cfg.RabbitMQ, &cfg.HTTP.Retry, logger)

		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		overview, err := client.Overview(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "management API check failed (%s): %v\n", client.BaseURL(), err)
			os.Exit(1)
		}
		fmt.Printf("management API reachable: %s (cluster %s, RabbitMQ %s)\n",
			client.BaseURL(), overview.ClusterName, overview.RabbitMQVersion)
	}

	if configPath == "" {
		configPath = "<defaults>"
	}
	fmt.Fprintf(os.Stderr, "config is valid: %s\n", configPath)
}
