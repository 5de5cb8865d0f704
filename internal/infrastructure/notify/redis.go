package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes events on a Redis Pub/Sub channel so every API
// replica can feed its own SSE clients.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

var (
	_ interfaces.IJobNotifier        = (*RedisNotifier)(nil)
	_ interfaces.IJobEventSubscriber = (*RedisNotifier)(nil)
)

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) Publish(ctx context.Context, ev entities.JobEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", n.channel, err)
	}
	return nil
}

func (n *RedisNotifier) Subscribe(ctx context.Context) (<-chan entities.JobEvent, func(), error) {
	ps := n.client.Subscribe(ctx, n.channel)
	// Receive blocks until the subscription is confirmed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("redis subscribe %s: %w", n.channel, err)
	}

	out := make(chan entities.JobEvent, subscriberBuffer)
	subCtx, stop := context.WithCancel(ctx)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				ev, err := decodeEvent(msg.Payload)
				if err != nil {
					slog.WarnContext(subCtx, "[notify] dropping malformed event", "channel", n.channel, "err", err)
					continue
				}
				select {
				case out <- ev:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()
	return out, stop, nil
}

func decodeEvent(payload string) (entities.JobEvent, error) {
	var ev entities.JobEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return entities.JobEvent{}, err
	}
	if ev.JobID == "" {
		return entities.JobEvent{}, fmt.Errorf("event without job id")
	}
	return ev, nil
}
