package runner

import (
	"time"

	"swapers-hq/lpmon/pkg/availability"
	"swapers-hq/lpmon/pkg/provider"
)

// Entry is the report line for one provider.
type Entry struct {
	// Record is the provider as read from the store before the check.
	Record provider.Record `json:"record"`

	// Result is the freshly computed availability. Zero when Err is set.
	Result availability.Result `json:"result"`

	// Modes are the effective receive/send flags derived from Result.
	Modes provider.EffectiveModes `json:"modes"`

	// Changed reports whether Result differs from the stored availability.
	Changed bool `json:"changed"`

	// TimedOut is set when the batch deadline expired before the check
	// completed. Timed-out entries are never persisted.
	TimedOut bool `json:"timed_out,omitempty"`

	// Canceled is set when the run was canceled before the check completed.
	// Canceled entries are never persisted.
	Canceled bool `json:"canceled,omitempty"`

	// Err holds a check failure such as an unknown kind.
	Err error `json:"-"`

	// PersistErr holds the write-back failure, if any.
	PersistErr error `json:"-"`
}

// OK reports whether the check produced a result that marks the provider
// available.
func (e Entry) OK() bool {
	return e.Err == nil && !e.TimedOut && !e.Canceled && e.Result.Available
}

// Report is the ordered outcome of one run.
type Report struct {
	RunID    string        `json:"run_id"`
	DryRun   bool          `json:"dry_run"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Entries  []Entry       `json:"entries"`
}

// Summary aggregates a report.
type Summary struct {
	Checked       int `json:"checked"`
	OK            int `json:"ok"`
	Changed       int `json:"changed"`
	TimedOut      int `json:"timed_out"`
	Canceled      int `json:"canceled"`
	Errors        int `json:"errors"`
	PersistErrors int `json:"persist_errors"`
}

// Summary counts the report's entries.
func (r *Report) Summary() Summary {
	var s Summary
	if r == nil {
		return s
	}
	s.Checked = len(r.Entries)
	for _, e := range r.Entries {
		if e.OK() {
			s.OK++
		}
		if e.Changed {
			s.Changed++
		}
		if e.TimedOut {
			s.TimedOut++
		}
		if e.Canceled {
			s.Canceled++
		}
		if e.Err != nil {
			s.Errors++
		}
		if e.PersistErr != nil {
			s.PersistErrors++
		}
	}
	return s
}
