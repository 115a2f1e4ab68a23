package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/gateway/pkg/cli"
	"mercator-hq/gateway/pkg/config"
	"mercator-hq/gateway/pkg/telemetry/logging"
)

var configFlags struct {
	output string
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the server would run with, after defaults,
the config file and environment overrides have been applied. The API key is
masked.

Examples:
  gateway config
  gateway config --config gateway.yaml --output json`,
	RunE: showConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&configFlags.output, "output", "o", string(cli.FormatYAML), "output format (yaml, json, text)")
}

func showConfig(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(configFlags.output)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), redactedConfig(cfg))
}

// redactedConfig returns a copy of cfg that is safe to print.
func redactedConfig(cfg *config.Config) *config.Config {
	out := *cfg
	out.Gemini.APIKey = logging.RedactAPIKey(cfg.Gemini.APIKey)
	return &out
}
