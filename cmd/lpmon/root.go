package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"swapers-hq/lpmon/pkg/cli"
	"swapers-hq/lpmon/pkg/config"
	"swapers-hq/lpmon/pkg/telemetry/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	cfgFile  string
	envFile  string
	logLevel string
	verbose  bool
}

// env is what PersistentPreRunE prepares for subcommands.
type env struct {
	flags  globalFlags
	config *config.Config
}

func newRootCommand() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "lpmon",
		Short: "Liquidity provider availability monitor",
		Long: `lpmon checks whether liquidity providers (exchanges, payment systems,
wallets, nodes, banks, cash desks) are reachable and operational, and writes
the result back as the provider's availability flag.

Exchanges are probed through their public status and time endpoints. Other
kinds are reported available by policy.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&e.flags.cfgFile, "config", "c", os.Getenv(config.EnvPrefix+"CONFIG"), "config file path (defaults apply when empty)")
	flags.StringVar(&e.flags.envFile, "env-file", ".env", "dotenv file loaded before configuration")
	flags.StringVar(&e.flags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	flags.BoolVarP(&e.flags.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newCheckCommand(e),
		newServeCommand(e),
		newProvidersCommand(e),
		newVersionCommand(),
		newCompletionCommand(root),
	)
	return root
}

// load reads the env file and configuration and installs the logger.
func (e *env) load(stderr io.Writer) error {
	if e.flags.envFile != "" {
		if err := config.LoadDotEnv(e.flags.envFile); err != nil {
			return cli.NewConfigError("env-file", err.Error())
		}
	}

	cfg, err := config.LoadConfigWithEnvOverrides(e.flags.cfgFile)
	if err != nil {
		return cli.NewConfigError("config", err.Error())
	}
	if e.flags.logLevel != "" {
		cfg.Telemetry.Logging.Level = e.flags.logLevel
	}

	logger, err := logging.New(cfg.Telemetry.Logging, stderr)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	e.config = cfg
	return nil
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string) int {
	root := newRootCommand()
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return cli.ExitCode(err)
}
