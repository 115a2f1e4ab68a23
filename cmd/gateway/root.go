package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/gateway/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Gemini gateway - HTTP proxy for Google Gemini text generation",
	Long: `Gateway is a minimal HTTP proxy in front of the Google Gemini API.

Clients POST a prompt to /api/gemini and receive the generated text. The
Gemini credential stays on the server and is read from the API_KEY
environment variable (or a .env file).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a status derived from the error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (optional, environment only when empty)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment before configuration (ignored when missing)")
}
