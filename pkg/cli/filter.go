package cli

import (
	"fmt"

	"swapers-hq/lpmon/pkg/provider"
)

// FilterFlags are the raw selection flags of the check command.
type FilterFlags struct {
	Providers []string
	Kinds     []string
	OnlyHome  bool
}

// ParseFilter normalizes flags into a provider.Filter. Values are trimmed
// and upper-cased. Unknown providers (per known) and unknown kinds are
// skipped with a warning. When providers were given but none is valid the
// filter selects nothing; when no kind is valid the kind filter is dropped.
func ParseFilter(flags FilterFlags, known func(id string) bool) (provider.Filter, []string) {
	var (
		f        = provider.Filter{OnlyHome: flags.OnlyHome}
		warnings []string
	)

	if len(flags.Providers) > 0 {
		f.IDs = []string{}
		for _, raw := range flags.Providers {
			id := provider.NormalizeID(raw)
			if !known(id) {
				warnings = append(warnings, fmt.Sprintf("unknown provider %q, skipping", id))
				continue
			}
			f.IDs = append(f.IDs, id)
		}
		if len(f.IDs) == 0 {
			warnings = append(warnings, "provider filter given but no valid values, selection is empty")
		}
	}

	for _, raw := range flags.Kinds {
		kind, err := provider.ParseKind(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("unknown kind %q, skipping", provider.NormalizeID(raw)))
			continue
		}
		f.Kinds = append(f.Kinds, kind)
	}

	return f, warnings
}
