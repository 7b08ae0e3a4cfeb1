// Package config provides configuration management for lpmon.
//
// Configuration is read from a YAML file, completed with defaults, overridden
// from the environment and validated before use.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("lpmon.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("lpmon.yaml")
//
// An empty path loads the defaults, so the CLI works without a file.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention LPMON_SECTION_FIELD:
//
//   - LPMON_RUNNER_CONCURRENCY overrides runner.concurrency
//   - LPMON_STORAGE_POSTGRES_DSN overrides storage.postgres.dsn
//   - LPMON_EVENTS_KAFKA_BROKERS overrides events.kafka.brokers (comma separated)
//
// LoadDotEnv reads a .env file into the process environment first, which is
// convenient for local development.
//
// # Reloading
//
// Holder keeps the active configuration behind an atomic pointer. Watcher
// observes the file with fsnotify and calls back after a debounce interval;
// serve mode uses the pair to rebuild the probe registry without restarting.
package config
