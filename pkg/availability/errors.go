package availability

import (
	"fmt"

	"swapers-hq/lpmon/pkg/provider"
)

// ConfigurationError is returned for a provider whose kind has no policy.
type ConfigurationError struct {
	Provider string
	Kind     provider.Kind
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider %q has kind %q with no availability policy", e.Provider, e.Kind)
}
