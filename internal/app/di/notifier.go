package di

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"watchlist_backend/internal/platform/notify"
)

// NewChangeNotifier fans change events out to every configured sink.
// Redis pub/sub is used when rdb is available and Kafka when brokers are set.
// The returned closer releases the Kafka writer and is never nil.
func NewChangeNotifier(cfg notify.Config, rdb *redis.Client) (notify.Multi, func() error) {
	var sinks notify.Multi
	closer := func() error { return nil }

	if rdb != nil && cfg.RedisChannel != "" {
		sinks = append(sinks, notify.NewRedisNotifier(rdb, cfg.RedisChannel))
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic != "" {
		k := notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		sinks = append(sinks, k)
		closer = k.Close
	}
	slog.Info("change notifier configured", "sinks", len(sinks))
	return sinks, closer
}
