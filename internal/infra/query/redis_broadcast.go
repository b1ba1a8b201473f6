package query

import (
	"context"
	"encoding/json"

	"terrimap/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Broadcaster relays invalidations between instances sharing one cache.
type Broadcaster interface {
	Publish(ctx context.Context, keys []string) error
	// Listen blocks until ctx ends, handing remote invalidations to receive.
	Listen(ctx context.Context, receive func(keys []string)) error
}

type invalidation struct {
	Origin string   `json:"origin"`
	Keys   []string `json:"keys"`
}

// RedisBroadcaster fans invalidations out over a Redis pub/sub channel.
type RedisBroadcaster struct {
	client  redis.UniversalClient
	channel string
	origin  string
}

// NewRedisBroadcaster creates a broadcaster on the channel derived from prefix.
func NewRedisBroadcaster(client redis.UniversalClient, prefix string) *RedisBroadcaster {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return &RedisBroadcaster{
		client:  client,
		channel: prefix + "invalidations",
		origin:  uuid.NewString(),
	}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, keys []string) error {
	payload, err := json.Marshal(invalidation{Origin: b.origin, Keys: keys})
	if err != nil {
		return errors.Wrap(err, "encode invalidation")
	}

	return errors.Wrapf(b.client.Publish(ctx, b.channel, payload).Err(), "redis publish %s", b.channel)
}

func (b *RedisBroadcaster) Listen(ctx context.Context, receive func(keys []string)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return errors.Wrapf(err, "redis subscribe %s", b.channel)
	}

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if keys, remote := b.decode(msg.Payload); remote {
				receive(keys)
			}
		}
	}
}

// decode drops malformed payloads and this instance's own messages.
func (b *RedisBroadcaster) decode(payload string) ([]string, bool) {
	var msg invalidation
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return nil, false
	}
	if msg.Origin == b.origin || len(msg.Keys) == 0 {
		return nil, false
	}

	return msg.Keys, true
}
