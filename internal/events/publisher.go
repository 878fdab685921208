package events

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/hplussport-catalog/internal/config"
	"github.com/rogerio-castellano/hplussport-catalog/pkg/logger"
)

// New builds the publisher selected by cfg.Events.Driver. rdb is only used
// by the redis driver and may be nil otherwise.
func New(cfg *config.Config, rdb *redis.Client, log logger.Logger) (Publisher, error) {
	var p Publisher
	switch cfg.Events.Driver {
	case "", "none":
		return NopPublisher{}, nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("events: redis driver needs a redis client")
		}
		p = NewRedisPublisher(rdb, cfg.Events.Stream, cfg.Events.MaxLen)
	case "kafka":
		if len(cfg.Kafka.Brokers) == 0 {
			return nil, fmt.Errorf("events: kafka driver needs at least one broker")
		}
		p = NewKafkaPublisher(cfg.Kafka, log)
	default:
		return nil, fmt.Errorf("events: unsupported driver %q", cfg.Events.Driver)
	}
	return WithTimeout(p, cfg.Events.PublishTimeout), nil
}
