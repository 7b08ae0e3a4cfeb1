package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"swapers-hq/lpmon/pkg/app"
	"swapers-hq/lpmon/pkg/cli"
	"swapers-hq/lpmon/pkg/config"
	"swapers-hq/lpmon/pkg/runner"
	"swapers-hq/lpmon/pkg/scheduler"
	"swapers-hq/lpmon/pkg/security/auth"
	"swapers-hq/lpmon/pkg/server"
	"swapers-hq/lpmon/pkg/telemetry/health"
)

type serveFlags struct {
	listenAddress string
	noSchedule    bool
	watch         bool
}

func newServeCommand(e *env) *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run scheduled checks and serve health, metrics and reports",
		Long: `Run checks on the configured cron schedule and serve the monitoring
endpoints until interrupted.

The configuration file is reloaded on change (with --watch) and on SIGHUP.
A reload rebuilds the probe registry, policies and runner; storage, events
and the listener keep their startup settings.

Examples:
  lpmon serve --config /etc/lpmon/config.yaml
  lpmon serve --listen 0.0.0.0:9090 --no-schedule`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, e, f)
		},
	}

	cmd.Flags().StringVarP(&f.listenAddress, "listen", "l", "", "override listen address")
	cmd.Flags().BoolVar(&f.noSchedule, "no-schedule", false, "disable scheduled runs; checks only run via POST /run")
	cmd.Flags().BoolVar(&f.watch, "watch", true, "reload configuration when the file changes")
	return cmd
}

func runServe(cmd *cobra.Command, e *env, f serveFlags) error {
	cfg := e.config
	if f.listenAddress != "" {
		cfg.Server.ListenAddress = f.listenAddress
	}

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	a, err := app.New(ctx, cfg, app.WithVersion(Version))
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer a.Close()

	holder := config.NewHolderFor(e.flags.cfgFile, cfg)
	latest := &server.Latest{}

	run := func(ctx context.Context, opts runner.Options) (*runner.Report, error) {
		report, err := a.Run(ctx, opts)
		latest.Set(report)
		return report, err
	}

	sched := scheduler.New(cfg.Schedule.Cron, func(ctx context.Context) error {
		report, err := run(ctx, runner.Options{DryRun: a.Config().Schedule.DryRun})
		if report != nil {
			slog.Info(cli.SummaryLine(report), "run_id", report.RunID)
		}
		return err
	})

	checker := health.New(2 * time.Second)
	checker.Register("store", health.StoreCheck(a.Store()))
	scheduled := cfg.Schedule.Enabled && !f.noSchedule
	if scheduled {
		checker.Register("last_run", health.LastRunCheck(sched.Last, staleAfter(sched.Interval(), cfg.Runner.BatchDeadline)))
	}

	routes := server.Routes{
		Health:  checker,
		Version: health.VersionHandler(Version, GitCommit, BuildDate),
		Latest:  latest,
		Run:     run,
	}
	if m := a.Metrics(); m != nil {
		routes.Metrics = m.Handler()
		routes.MetricsPath = cfg.Telemetry.Metrics.Path
	}
	if v := apiKeyValidator(cfg.Server.APIKeys); v.Len() > 0 {
		routes.Auth = auth.NewMiddleware(v).Handle
	} else {
		slog.Warn("no API keys configured; POST /run is unauthenticated")
	}

	srv := server.New(cfg.Server, routes.Handler())
	if err := srv.Listen(); err != nil {
		return cli.NewCommandError("serve", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "lpmon %s listening on %s\n", Version, srv.Addr())

	reload := func() error {
		next, err := holder.Reload()
		if err != nil {
			return err
		}
		if err := a.Reload(next); err != nil {
			return err
		}
		slog.Info("configuration reloaded", "path", holder.Path())
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(gctx) })

	if scheduled {
		if err := sched.Start(gctx); err != nil {
			return cli.NewCommandError("serve", err)
		}
		if next := sched.NextRun(); next != nil {
			slog.Info("scheduled checks enabled", "cron", cfg.Schedule.Cron, "next_run", next)
		}
		if cfg.Schedule.RunOnStart {
			g.Go(func() error {
				sched.Trigger(gctx)
				return nil
			})
		}
	}

	if f.watch && holder.Path() != "" {
		watcher := config.NewWatcher(holder.Path(), 0)
		g.Go(func() error {
			if err := watcher.Watch(gctx, reload); err != nil {
				slog.Warn("configuration watcher stopped", "error", err)
			}
			return nil
		})
	}

	if holder.Path() != "" {
		hup, stopHUP := cli.ReloadSignals()
		defer stopHUP()
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-hup:
					if err := reload(); err != nil {
						slog.Error("configuration reload failed", "error", err)
					}
				}
			}
		})
	}

	err = g.Wait()
	sched.Stop()
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "lpmon stopped")
	return nil
}

// staleAfter is how old the last scheduled run may get before readiness
// fails: two missed ticks plus one batch deadline.
func staleAfter(interval, deadline time.Duration) time.Duration {
	return 2*interval + deadline
}

func apiKeyValidator(keys []config.APIKeyConfig) *auth.Validator {
	out := make([]auth.Key, 0, len(keys))
	for _, k := range keys {
		out = append(out, auth.Key{Name: k.Name, Secret: k.Key, Disabled: k.Disabled})
	}
	return auth.NewValidator(out)
}
