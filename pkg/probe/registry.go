package probe

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrDuplicateEntry is returned when extending a registry with an identity it
// already holds.
var ErrDuplicateEntry = errors.New("probe registry already has an entry for provider")

// Entry is the set of endpoints registered for one provider.
type Entry struct {
	Provider string
	Status   *Endpoint
	Time     *Endpoint
}

// Endpoints is the result of a registry lookup. Either field may be nil.
type Endpoints struct {
	Status *Endpoint
	Time   *Endpoint
}

// Empty reports whether no endpoint is registered.
func (e Endpoints) Empty() bool {
	return e.Status == nil && e.Time == nil
}

// Registry is an immutable provider → endpoints table. The zero value is an
// empty registry.
type Registry struct {
	entries map[string]Endpoints
}

// NewRegistry builds a registry from entries.
func NewRegistry(entries ...Entry) (*Registry, error) {
	return (&Registry{}).Extend(entries...)
}

// MustRegistry is NewRegistry that panics on error. Intended for static tables.
func MustRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Extend returns a new registry holding r's entries plus entries. Existing
// identities are never overwritten; adding one again fails with
// ErrDuplicateEntry. r is left untouched.
func (r *Registry) Extend(entries ...Entry) (*Registry, error) {
	next := &Registry{entries: make(map[string]Endpoints, r.Len()+len(entries))}
	if r != nil {
		maps.Copy(next.entries, r.entries)
	}

	for _, e := range entries {
		id := strings.ToUpper(strings.TrimSpace(e.Provider))
		if id == "" {
			return nil, errors.New("probe registry entry has empty provider")
		}
		if _, exists := next.entries[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, id)
		}
		if e.Status != nil {
			if err := e.Status.validate(KindStatus); err != nil {
				return nil, fmt.Errorf("provider %s: %w", id, err)
			}
		}
		if e.Time != nil {
			if err := e.Time.validate(KindTime); err != nil {
				return nil, fmt.Errorf("provider %s: %w", id, err)
			}
		}
		next.entries[id] = Endpoints{Status: e.Status, Time: e.Time}
	}

	return next, nil
}

// Lookup returns the endpoints registered for provider. A missing identity
// yields empty Endpoints.
func (r *Registry) Lookup(provider string) Endpoints {
	if r == nil {
		return Endpoints{}
	}
	return r.entries[strings.ToUpper(strings.TrimSpace(provider))]
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Providers returns the registered identities in sorted order.
func (r *Registry) Providers() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.entries))
}
