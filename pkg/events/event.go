package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"swapers-hq/lpmon/pkg/availability"
	"swapers-hq/lpmon/pkg/provider"
)

// Event describes an availability transition.
type Event struct {
	ID        string            `json:"id"`
	RunID     string            `json:"run_id,omitempty"`
	Provider  string            `json:"provider"`
	Kind      provider.Kind     `json:"kind"`
	Previous  bool              `json:"previous"`
	Available bool              `json:"available"`
	Code      availability.Code `json:"code"`
	Detail    string            `json:"detail,omitempty"`
	CheckedAt time.Time         `json:"checked_at"`
}

// NewEvent builds the event for rec moving to res.
func NewEvent(runID string, rec provider.Record, res availability.Result) Event {
	return Event{
		ID:        uuid.NewString(),
		RunID:     runID,
		Provider:  rec.ID,
		Kind:      rec.Kind,
		Previous:  rec.IsAvailable,
		Available: res.Available,
		Code:      res.Code,
		Detail:    res.Detail,
		CheckedAt: res.CheckedAt,
	}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// Nop is a Publisher that drops everything.
type Nop struct{}

func (Nop) Publish(context.Context, ...Event) error { return nil }
func (Nop) Close() error                             { return nil }
