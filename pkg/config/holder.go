package config

import (
	"fmt"
	"sync/atomic"
)

// Holder holds the active configuration and swaps it atomically on reload.
// Readers always see a complete, validated Config.
type Holder struct {
	path    string
	current atomic.Pointer[Config]
}

// NewHolder loads path (with environment overrides) and returns a holder for it.
func NewHolder(path string) (*Holder, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, err
	}
	h := &Holder{path: path}
	h.current.Store(cfg)
	return h, nil
}

// NewHolderFor wraps an already loaded configuration.
func NewHolderFor(path string, cfg *Config) *Holder {
	h := &Holder{path: path}
	h.current.Store(cfg)
	return h
}

// Get returns the active configuration.
func (h *Holder) Get() *Config {
	return h.current.Load()
}

// Path returns the file the holder reloads from.
func (h *Holder) Path() string {
	return h.path
}

// Reload re-reads the file. On failure the active configuration is kept and
// the error is returned.
func (h *Holder) Reload() (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(h.path)
	if err != nil {
		return nil, fmt.Errorf("failed to reload configuration: %w", err)
	}
	h.current.Store(cfg)
	return cfg, nil
}
