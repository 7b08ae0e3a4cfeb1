package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"swapers-hq/lpmon/pkg/app"
	"swapers-hq/lpmon/pkg/cli"
)

func newProvidersCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Inspect and seed stored provider records",
	}
	cmd.AddCommand(newProvidersListCommand(e), newProvidersSyncCommand(e))
	return cmd
}

func newProvidersListCommand(e *env) *cobra.Command {
	var (
		kinds  []string
		format string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored providers with their effective modes",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cli.ParseFormat(format)
			if err != nil {
				return err
			}

			// A memory store starts empty, so it is seeded; real backends are
			// only read.
			var opts []app.Option
			if e.config.Storage.Backend != "memory" {
				opts = append(opts, app.WithoutSeed())
			}

			ctx := context.Background()
			a, err := app.New(ctx, e.config, opts...)
			if err != nil {
				return cli.NewCommandError("providers list", err)
			}
			defer a.Close()

			records, err := a.Store().ListProviders(ctx)
			if err != nil {
				return cli.NewCommandError("providers list", err)
			}
			return cli.WriteProviders(cmd.OutOrStdout(), out, kindFilter(cmd, kinds).Apply(records))
		},
	}
	cmd.Flags().StringArrayVar(&kinds, "kind", nil, "only this kind (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format: text, json, csv")
	return cmd
}

func newProvidersSyncCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Insert catalog providers missing from the store",
		Long: `Insert every catalog provider (built-in plus configured) that the store
does not have yet. Existing records, including their availability and
operating flags, are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := app.New(ctx, e.config, app.WithoutSeed())
			if err != nil {
				return cli.NewCommandError("providers sync", err)
			}
			defer a.Close()

			created, err := a.Seed(ctx, e.config)
			if err != nil {
				return cli.NewCommandError("providers sync", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created=%d\n", created)
			return nil
		},
	}
}
