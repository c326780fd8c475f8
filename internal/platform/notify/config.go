// Package notify publishes watchlist change events to Redis and Kafka.
package notify

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config selects the notification sinks. Empty values disable a sink.
type Config struct {
	RedisChannel string   `envconfig:"NOTIFY_REDIS_CHANNEL" default:"watchlist:changed"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"watchlist.changed"`
}

// LoadConfig reads notification settings from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load notify config: %w", err)
	}
	return cfg, nil
}
