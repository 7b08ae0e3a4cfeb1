package events

import (
	"fmt"

	"swapers-hq/lpmon/pkg/config"
)

// Open builds the publisher selected by cfg.Backend.
func Open(cfg config.EventsConfig) (Publisher, error) {
	switch cfg.Backend {
	case "", "none":
		return Nop{}, nil
	case "log":
		return NewLogPublisher(nil), nil
	case "kafka":
		return NewKafkaPublisher(KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported events backend %q", cfg.Backend)
	}
}
