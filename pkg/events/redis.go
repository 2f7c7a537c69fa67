package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Publisher is the subset of a Redis client used for dispatch.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisDispatcher publishes events as JSON on "<prefix>:<event name>".
type RedisDispatcher struct {
	pub    Publisher
	prefix string
}

// NewRedisDispatcher returns a dispatcher publishing through pub.
func NewRedisDispatcher(pub Publisher, prefix string) *RedisDispatcher {
	return &RedisDispatcher{pub: pub, prefix: prefix}
}

// Channel returns the channel an event with the given name is published on.
func (d *RedisDispatcher) Channel(name string) string {
	if d.prefix == "" {
		return name
	}
	return d.prefix + ":" + name
}

// Dispatch publishes e. It does not check whether anyone is subscribed.
func (d *RedisDispatcher) Dispatch(ctx context.Context, e Event) error {
	if e.Name == "" {
		return errors.Join(ErrInvalidEvent, errors.New("empty event name"))
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Join(ErrInvalidEvent, err)
	}
	if err := d.pub.Publish(ctx, d.Channel(e.Name), payload).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// NewDispatcher picks the dispatcher for cfg: a RedisDispatcher when events
// are enabled and pub is set, otherwise a NoopDispatcher.
func NewDispatcher(cfg Config, pub Publisher) Dispatcher {
	if !cfg.Enabled || pub == nil {
		return NoopDispatcher{}
	}
	return NewRedisDispatcher(pub, cfg.ChannelPrefix)
}
