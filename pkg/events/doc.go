// Package events publishes provider availability transitions.
//
// The batch runner emits an Event whenever a freshly computed availability
// differs from the stored one. Publishers:
//
//   - Nop discards events.
//   - LogPublisher writes them to slog.
//   - KafkaPublisher produces JSON messages keyed by provider identity, so
//     all transitions of one provider land on the same partition in order.
package events
