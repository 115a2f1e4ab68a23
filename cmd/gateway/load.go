package main

import (
	"mercator-hq/gateway/pkg/cli"
	"mercator-hq/gateway/pkg/config"
)

// loadConfig reads the dotenv file and the configuration, the same way for
// every command.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, cli.NewConfigError("", "failed to load env file", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", "failed to load config", err)
	}
	return cfg, nil
}
