/*
Package cli provides helpers shared by the gateway's commands.

Errors:

Commands return ConfigError for configuration problems and CommandError for
runtime failures. ExitCode maps them to the process exit status (2 for
configuration errors, 1 otherwise).

Output Formatting:

Commands that print structured data accept text, JSON or YAML:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, data); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
