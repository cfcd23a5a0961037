package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"
)

// RedisNotifier publishes notifications on a Redis channel so other
// clients of the same account can surface them. Publishing is
// fire-and-forget.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier creates a notifier publishing on the given channel.
func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (r *RedisNotifier) Notify(ctx context.Context, n Notification) {
	payload, err := json.Marshal(map[string]any{
		"type":    "notification",
		"payload": n,
	})
	if err != nil {
		return
	}
	if err := r.client.Publish(ctx, r.channel, string(payload)).Err(); err != nil {
		zlog.Warn().Err(err).Msg("notify: redis publish failed")
	}
}
