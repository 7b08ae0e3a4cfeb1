package provider

import (
	"slices"
	"strings"
)

// Record is a provider as stored by the platform.
type Record struct {
	// ID is the provider symbol (e.g. "BINANCE"). Globally unique.
	ID string `json:"id"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// Kind is the provider category.
	Kind Kind `json:"kind"`

	// CanReceive and CanSend are the manually configured operating flags.
	CanReceive bool `json:"can_receive"`
	CanSend    bool `json:"can_send"`

	// HomeVisible marks providers whose prices are shown on the home page.
	HomeVisible bool `json:"home_visible"`

	// IsAvailable is the last persisted availability.
	IsAvailable bool `json:"is_available"`
}

// DisplayName returns Name, falling back to the identity.
func (r Record) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Filter selects records. All set criteria must match.
type Filter struct {
	// IDs restricts the selection to these identities when non-nil. A
	// non-nil empty slice matches nothing.
	IDs []string

	// Kinds restricts the selection to these kinds when non-empty.
	Kinds []Kind

	// OnlyHome keeps only home-visible records.
	OnlyHome bool
}

// Match reports whether r passes every criterion of f.
func (f Filter) Match(r Record) bool {
	if f.IDs != nil && !slices.Contains(f.IDs, r.ID) {
		return false
	}
	if len(f.Kinds) > 0 && !slices.Contains(f.Kinds, r.Kind) {
		return false
	}
	if f.OnlyHome && !r.HomeVisible {
		return false
	}
	return true
}

// Apply returns the records matching f sorted by identity.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b Record) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// NormalizeID trims and upper-cases a provider identity.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
