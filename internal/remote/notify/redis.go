package notify

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

type Redis struct {
	client  *redis.Client
	channel string
	origin  string
}

func NewRedis(client *redis.Client, channel string) *Redis {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Redis{client: client, channel: channel, origin: newOrigin()}
}

func (r *Redis) Publish(ctx context.Context, path string) error {
	return r.client.Publish(ctx, r.channel, encode(r.origin, path)).Err()
}

func (r *Redis) Subscribe(ctx context.Context, fn func(path string)) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("notify: redis subscription closed")
			}
			origin, path, ok := decode(msg.Payload)
			if !ok || origin == r.origin {
				continue
			}
			fn(path)
		}
	}
}
