package events

import (
	"context"
	"log/slog"
)

// LogPublisher writes events to a slog logger.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher. A nil logger uses slog.Default.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "events")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...Event) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, "provider availability changed",
			"provider", e.Provider,
			"kind", string(e.Kind),
			"previous", e.Previous,
			"available", e.Available,
			"code", string(e.Code),
		)
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }
