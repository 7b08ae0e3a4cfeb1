package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"swapers-hq/lpmon/pkg/app"
	"swapers-hq/lpmon/pkg/cli"
	"swapers-hq/lpmon/pkg/provider"
	"swapers-hq/lpmon/pkg/runner"
)

type checkFlags struct {
	providers []string
	kinds     []string
	onlyHome  bool
	dryRun    bool
	format    string
}

func newCheckCommand(e *env) *cobra.Command {
	var f checkFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check provider availability once",
		Long: `Check the availability of the selected providers and, unless --dry-run
is given, write the result back to the store.

Filters are conjunctive. Unknown provider or kind values are reported and
skipped.

Examples:
  # Check everything
  lpmon check

  # Two exchanges, no writes, one line per provider
  lpmon check --provider BYBIT --provider KUCOIN --dry-run -v

  # Home-page exchanges as JSON
  lpmon check --kind CEX --only-home --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, e, f)
		},
	}

	cmd.Flags().StringArrayVar(&f.providers, "provider", nil, "provider identity to check (repeatable)")
	cmd.Flags().StringArrayVar(&f.kinds, "kind", nil, "provider kind to check: CEX, DEX, PSP, WALLET, NODE, EXCHANGER, BANK, CASH (repeatable)")
	cmd.Flags().BoolVar(&f.onlyHome, "only-home", false, "only providers shown on the home page")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "compute results without writing them")
	cmd.Flags().StringVarP(&f.format, "format", "o", "text", "output format: text, json, csv")
	return cmd
}

func runCheck(cmd *cobra.Command, e *env, f checkFlags) error {
	format, err := cli.ParseFormat(f.format)
	if err != nil {
		return err
	}
	writer, err := cli.NewReportWriter(format, e.flags.verbose)
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	a, err := app.New(ctx, e.config, app.WithVersion(Version))
	if err != nil {
		return cli.NewCommandError("check", err)
	}
	defer a.Close()

	records, err := a.Store().ListProviders(ctx)
	if err != nil {
		return cli.NewCommandError("check", err)
	}
	known := make(map[string]bool, len(records))
	for _, r := range records {
		known[r.ID] = true
	}

	filter, warnings := cli.ParseFilter(cli.FilterFlags{
		Providers: f.providers,
		Kinds:     f.kinds,
		OnlyHome:  f.onlyHome,
	}, func(id string) bool { return known[id] })
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}

	if len(filter.Apply(records)) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: no providers match the given filters")
		return nil
	}

	report, runErr := a.Run(ctx, runner.Options{Filter: filter, DryRun: f.dryRun})
	if report != nil {
		if err := writer.WriteReport(cmd.OutOrStdout(), report); err != nil {
			return cli.NewCommandError("check", err)
		}
	}
	if runErr != nil {
		slog.Error("check did not complete", "error", runErr)
		return cli.NewCommandError("check", runErr)
	}
	return nil
}

// kindFilter parses --kind values for commands other than check.
func kindFilter(cmd *cobra.Command, kinds []string) provider.Filter {
	filter, warnings := cli.ParseFilter(cli.FilterFlags{Kinds: kinds}, func(string) bool { return true })
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	return filter
}
