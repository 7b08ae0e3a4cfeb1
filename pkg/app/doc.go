// Package app assembles lpmon's components from configuration.
//
// The Build* functions translate individual config sections into the
// immutable objects the engine works with: the probe registry, the policy
// table and the seed catalog. App ties them together with a store, an event
// publisher and an optional metrics collector, and can rebuild its engine
// and runner when configuration is reloaded without reopening the store.
package app
