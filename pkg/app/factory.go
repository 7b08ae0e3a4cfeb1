package app

import (
	"fmt"
	"log/slog"

	"swapers-hq/lpmon/pkg/availability"
	"swapers-hq/lpmon/pkg/config"
	"swapers-hq/lpmon/pkg/probe"
	"swapers-hq/lpmon/pkg/provider"
	"swapers-hq/lpmon/pkg/runner"
)

// BuildRegistry returns the probe registry described by cfg: the built-in
// table unless disabled, extended by the configured endpoints.
func BuildRegistry(cfg config.RegistryConfig) (*probe.Registry, error) {
	var base *probe.Registry
	if !cfg.DisableDefaults {
		base = probe.DefaultRegistry()
	}

	entries := make([]probe.Entry, 0, len(cfg.Endpoints))
	for _, ep := range cfg.Endpoints {
		entry := probe.Entry{Provider: ep.Provider}
		if ep.StatusURL != "" {
			pred, err := probe.NamedPredicate(ep.Maintenance.Predicate, ep.Maintenance.Keywords, ep.Maintenance.StatusCodes)
			if err != nil {
				return nil, fmt.Errorf("provider %s: %w", ep.Provider, err)
			}
			entry.Status = probe.StatusEndpoint(ep.StatusURL, pred)
		}
		if ep.TimeURL != "" {
			entry.Time = probe.TimeEndpoint(ep.TimeURL)
		}
		entries = append(entries, entry)
	}

	reg, err := base.Extend(entries...)
	if err != nil {
		return nil, fmt.Errorf("failed to build probe registry: %w", err)
	}

	slog.Debug("probe registry built",
		"providers", reg.Len(),
		"configured", len(entries),
		"defaults", !cfg.DisableDefaults,
	)
	return reg, nil
}

// BuildPolicies returns the default policy table with cfg's overrides.
func BuildPolicies(cfg map[string]config.PolicyConfig) (availability.PolicyTable, error) {
	table := availability.DefaultPolicies()
	for key, pc := range cfg {
		kind, err := provider.ParseKind(key)
		if err != nil {
			return nil, fmt.Errorf("policy %q: %w", key, err)
		}

		switch pc.Mode {
		case "probe":
			table = table.With(kind, availability.ProbeChain{})
		case "always_available":
			code := availability.SkippedCode(kind)
			if pc.Code != "" {
				code = availability.Code(pc.Code)
			}
			table = table.With(kind, availability.AlwaysAvailable{Code: code})
		default:
			return nil, fmt.Errorf("policy %q: unsupported mode %q", key, pc.Mode)
		}
	}
	return table, nil
}

// BuildCatalog returns the records to seed into the store, ordered by
// identity. Configured providers replace built-in entries with the same
// identity.
func BuildCatalog(cfg config.CatalogConfig) ([]provider.Record, error) {
	byID := make(map[string]provider.Record)
	if !cfg.DisableBuiltin {
		for _, e := range provider.Catalog() {
			byID[e.ID] = e.Record()
		}
	}

	for _, pc := range cfg.Providers {
		id := provider.NormalizeID(pc.ID)
		kind, err := provider.ParseKind(pc.Kind)
		if err != nil {
			return nil, fmt.Errorf("catalog provider %q: %w", pc.ID, err)
		}
		rec := provider.Entry{ID: id, Name: pc.Name, Kind: kind}.Record()
		rec.CanReceive = !pc.DisableReceive
		rec.CanSend = !pc.DisableSend
		byID[id] = rec
	}

	for _, id := range cfg.HomeVisible {
		id = provider.NormalizeID(id)
		rec, ok := byID[id]
		if !ok {
			slog.Warn("home_visible references unknown provider", "provider", id)
			continue
		}
		rec.HomeVisible = true
		byID[id] = rec
	}

	records := make([]provider.Record, 0, len(byID))
	for _, rec := range byID {
		records = append(records, rec)
	}
	return provider.Filter{}.Apply(records), nil
}

// BuildEngine creates the availability engine for cfg. observer may be nil.
func BuildEngine(cfg *config.Config, observer availability.ProbeObserver) (*availability.Engine, error) {
	reg, err := BuildRegistry(cfg.Registry)
	if err != nil {
		return nil, err
	}
	policies, err := BuildPolicies(cfg.Policies)
	if err != nil {
		return nil, err
	}

	prober := probe.NewHTTPProber(probe.Options{
		Timeout:      cfg.Probe.Timeout,
		UserAgent:    cfg.Probe.UserAgent,
		MaxBodyBytes: cfg.Probe.MaxBodyBytes,
	})

	opts := []availability.Option{availability.WithPolicies(policies)}
	if observer != nil {
		opts = append(opts, availability.WithObserver(observer))
	}
	return availability.NewEngine(reg, prober, opts...), nil
}

// runnerOptions converts the runner section to runner options.
func runnerOptions(cfg config.RunnerConfig) []runner.Option {
	return []runner.Option{
		runner.WithConcurrency(cfg.Concurrency),
		runner.WithDeadline(cfg.BatchDeadline),
	}
}
